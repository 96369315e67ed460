package mysql

const insertBookingSQL = `
INSERT INTO bookings
  (id, room_id, customer_id, check_in, check_out, guests, total_cents, status, special_requests, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE bookings
SET status = ?
WHERE id = ?
`

const bookingColumns = `
  id, room_id, customer_id, check_in, check_out, guests, total_cents, status, special_requests, created_at
`

const getBookingSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE id = ?
`

const findByCustomerSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE customer_id = ?
ORDER BY check_in ASC, id ASC
`

const findUpcomingSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE customer_id = ?
  AND status IN ('PENDING', 'CONFIRMED')
  AND check_in >= ?
ORDER BY check_in ASC, id ASC
`

// Half-open overlap: [check_in, check_out) intersects [?, ?) when
// check_in < rangeEnd AND check_out > rangeStart.
const findOverlappingSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE room_id = ?
  AND status IN ('PENDING', 'CONFIRMED')
  AND check_in < ?
  AND check_out > ?
ORDER BY check_in ASC, id ASC
`

const listActiveHoldsSQL = `
SELECT id, room_id, check_in, check_out
FROM bookings
WHERE status IN ('PENDING', 'CONFIRMED')
`

const listCompletableSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE status = 'CONFIRMED'
  AND check_out <= ?
ORDER BY check_out ASC, id ASC
`

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, address, city, state, zip_code, country, phone, description, star_rating)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  address     = VALUES(address),
  city        = VALUES(city),
  state       = VALUES(state),
  zip_code    = VALUES(zip_code),
  country     = VALUES(country),
  phone       = VALUES(phone),
  description = VALUES(description),
  star_rating = VALUES(star_rating),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, room_number, room_type, price_cents, capacity, description)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id    = VALUES(hotel_id),
  room_number = VALUES(room_number),
  room_type   = VALUES(room_type),
  price_cents = VALUES(price_cents),
  capacity    = VALUES(capacity),
  description = VALUES(description),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertCustomerSQL = `
INSERT INTO customers
  (id, first_name, last_name, email)
VALUES
  (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  first_name = VALUES(first_name),
  last_name  = VALUES(last_name),
  email      = VALUES(email),
  updated_at = CURRENT_TIMESTAMP
`

const getHotelSQL = `
SELECT id, name, address, city, state, zip_code, country, phone, description, star_rating
FROM hotels
WHERE id = ?
`

const listHotelsSQL = `
SELECT id, name, address, city, state, zip_code, country, phone, description, star_rating
FROM hotels
ORDER BY name ASC, id ASC
`

const getRoomSQL = `
SELECT id, hotel_id, room_number, room_type, price_cents, capacity, description
FROM rooms
WHERE id = ?
`

const listRoomsByHotelSQL = `
SELECT id, hotel_id, room_number, room_type, price_cents, capacity, description
FROM rooms
WHERE hotel_id = ?
ORDER BY room_number ASC, id ASC
`

const getCustomerSQL = `
SELECT id, first_name, last_name, email
FROM customers
WHERE id = ?
`
