package mysql

const postColumns = `
  id, source_url, use_emojis, style, generated_post, original_post, outcome,
  hotel_name, hotel_category, destination, price, duration, description, image_url,
  features, feature_icons, amenities, custom_sections, created_at, updated_at`

const insertPostSQL = `
INSERT INTO post_generations (` + postColumns + `)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getPostSQL = `SELECT` + postColumns + `
FROM post_generations
WHERE id = ?
`

// Row lock held for the read-modify-write in UpdatePost.
const getPostForUpdateSQL = getPostSQL + `FOR UPDATE
`

// original_post, source_url, options and created_at never change after insert.
const updatePostSQL = `
UPDATE post_generations SET
  generated_post  = ?,
  outcome         = ?,
  hotel_name      = ?,
  hotel_category  = ?,
  destination     = ?,
  price           = ?,
  duration        = ?,
  description     = ?,
  image_url       = ?,
  features        = ?,
  feature_icons   = ?,
  amenities       = ?,
  custom_sections = ?,
  updated_at      = ?
WHERE id = ?
`
