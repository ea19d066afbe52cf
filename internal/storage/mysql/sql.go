package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, city, country, property_type, star_rating, price_per_night, doc)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name            = VALUES(name),
  city            = VALUES(city),
  country         = VALUES(country),
  property_type   = VALUES(property_type),
  star_rating     = VALUES(star_rating),
  price_per_night = VALUES(price_per_night),
  doc             = VALUES(doc),
  updated_at      = CURRENT_TIMESTAMP
`

// seq keeps insertion order; id is the primary key so a colliding id fails with 1062.
const insertBookingSQL = `
INSERT INTO bookings
  (id, user_id, hotel_id, hotel_name, hotel_image, room_id, room_name,
   check_in, check_out, guests, guest_details, price_breakdown, status, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listHotelsSQL = `SELECT doc FROM hotels ORDER BY seq`

const bookingColumns = `
  id, user_id, hotel_id, hotel_name, hotel_image, room_id, room_name,
  check_in, check_out, guests, guest_details, price_breakdown, status, created_at`

const listBookingsByUserSQL = `SELECT` + bookingColumns + `
FROM bookings
WHERE user_id = ?
ORDER BY seq`

const getBookingSQL = `SELECT` + bookingColumns + `
FROM bookings
WHERE id = ?`

const lockBookingSQL = `SELECT status FROM bookings WHERE id = ? FOR UPDATE`

const updateStatusSQL = `UPDATE bookings SET status = ? WHERE id = ?`
