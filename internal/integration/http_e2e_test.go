//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/identity"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/catalog"
	"hotel_booking/internal/domain"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// ---------- helpers ----------

func migrationsDir() string {
	if d := os.Getenv("MIGRATIONS_DIR"); d != "" {
		return d
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=hotel_booking"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel_booking?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeIdentity stands in for the remote identity provider.
func fakeIdentity(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"username":"ana","email":"ana@example.com","firstName":"Ana","lastName":"Lima","accessToken":"tok-ana"}`))
	}))
	t.Cleanup(ts.Close)
	return ts.URL
}

func call(t *testing.T, method, url, token, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	if out != nil && res.StatusCode < 300 {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res.StatusCode
}

// ---------- the test ----------

func TestHTTP_EndToEnd_BookingOnMySQL(t *testing.T) {
	db := startMySQL(t)
	applyMigrations(t, db)
	ctx := context.Background()

	repo := mysqlrepo.New(db)

	// seed the catalog the same way cmd/seeder does
	hotels, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("embedded catalog: %v", err)
	}
	ok, failed, err := app.NewSeedService(repo, 3).SeedHotels(ctx, hotels)
	if err != nil || failed != 0 || ok != len(hotels) {
		t.Fatalf("seed: ok=%d failed=%d err=%v", ok, failed, err)
	}
	cat, err := app.LoadCatalog(ctx, repo)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if cat.Len() != len(hotels) {
		t.Fatalf("catalog len=%d want %d", cat.Len(), len(hotels))
	}

	mr := miniredis.RunT(t)
	rc := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	idp, err := identity.New(fakeIdentity(t), 2*time.Second, 50)
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	sessions := app.NewSessionService(idp, redisad.NewKV(rc), time.Hour)
	srv := server.New(sessions)
	srv.MountHandlers(&server.Handlers{
		Q: app.NewQueryService(cat, redisad.NewCache(rc), time.Minute),
		B: app.NewBookingService(repo, cat),
		S: sessions,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	var search struct {
		Hotels []domain.Hotel `json:"hotels"`
		Total  int            `json:"total"`
	}
	if code := call(t, http.MethodGet, ts.URL+"/v1/hotels?destination=paris", "", "", &search); code != http.StatusOK {
		t.Fatalf("search status %d", code)
	}
	if search.Total != 1 || search.Hotels[0].ID != "3" {
		t.Fatalf("unexpected search result: %+v", search)
	}

	var sess domain.Session
	if code := call(t, http.MethodPost, ts.URL+"/v1/auth/login", "", `{"username":"ana","password":"pw"}`, &sess); code != http.StatusOK {
		t.Fatalf("login status %d", code)
	}

	var b domain.Booking
	body := `{"hotelId":"3","roomId":"3-cls","checkIn":"2031-05-01","checkOut":"2031-05-03","guests":2,
		"guestDetails":{"fullName":"Ana Lima","email":"ana@example.com","phone":"+55 11"}}`
	if code := call(t, http.MethodPost, ts.URL+"/v1/bookings", sess.Token, body, &b); code != http.StatusCreated {
		t.Fatalf("create status %d", code)
	}
	if b.UserID != "7" || b.PriceBreakdown.Nights != 2 || b.HotelName != "Le Petit Marais" {
		t.Fatalf("unexpected booking: %+v", b)
	}

	var list []domain.Booking
	if code := call(t, http.MethodGet, ts.URL+"/v1/bookings", sess.Token, "", &list); code != http.StatusOK {
		t.Fatalf("list status %d", code)
	}
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	var res map[string]bool
	if code := call(t, http.MethodPost, ts.URL+"/v1/bookings/"+b.ID+"/cancel", sess.Token, "", &res); code != http.StatusOK || !res["cancelled"] {
		t.Fatalf("cancel status %d body %v", code, res)
	}
	got, found, err := repo.Get(ctx, b.ID)
	if err != nil || !found || got.Status != domain.StatusCancelled {
		t.Fatalf("stored booking: %+v found=%v err=%v", got, found, err)
	}
}
