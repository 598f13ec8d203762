package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const profileColumns = `id, email, username, hashed_password, postal_code, city, latitude, longitude, pet_name, pet_type, pet_gender, avatar_url, bio, role, created_at, updated_at`

func scanProfile(row interface{ Scan(dest ...interface{}) error }) (Profile, error) {
	var i Profile
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Username,
		&i.HashedPassword,
		&i.PostalCode,
		&i.City,
		&i.Latitude,
		&i.Longitude,
		&i.PetName,
		&i.PetType,
		&i.PetGender,
		&i.AvatarURL,
		&i.Bio,
		&i.Role,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createProfile = `
INSERT INTO profiles (id, email, username, hashed_password, postal_code, city, pet_name, pet_type, pet_gender, avatar_url, role)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + profileColumns

type CreateProfileParams struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Username       string      `json:"username"`
	HashedPassword string      `json:"hashed_password"`
	PostalCode     pgtype.Text `json:"postal_code"`
	City           pgtype.Text `json:"city"`
	PetName        pgtype.Text `json:"pet_name"`
	PetType        pgtype.Text `json:"pet_type"`
	PetGender      pgtype.Text `json:"pet_gender"`
	AvatarURL      pgtype.Text `json:"avatar_url"`
	Role           string      `json:"role"`
}

func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (Profile, error) {
	row := q.db.QueryRow(ctx, createProfile,
		arg.ID,
		arg.Email,
		arg.Username,
		arg.HashedPassword,
		arg.PostalCode,
		arg.City,
		arg.PetName,
		arg.PetType,
		arg.PetGender,
		arg.AvatarURL,
		arg.Role,
	)
	return scanProfile(row)
}

const getProfileByID = `
SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

func (q *Queries) GetProfileByID(ctx context.Context, id string) (Profile, error) {
	row := q.db.QueryRow(ctx, getProfileByID, id)
	return scanProfile(row)
}

const getProfileByEmail = `
SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`

func (q *Queries) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	row := q.db.QueryRow(ctx, getProfileByEmail, email)
	return scanProfile(row)
}

const updateProfile = `
UPDATE profiles
SET username    = coalesce($2, username),
    postal_code = coalesce($3, postal_code),
    city        = coalesce($4, city),
    pet_name    = coalesce($5, pet_name),
    pet_type    = coalesce($6, pet_type),
    pet_gender  = coalesce($7, pet_gender),
    bio         = coalesce($8, bio),
    latitude    = CASE WHEN $9 THEN NULL ELSE latitude END,
    longitude   = CASE WHEN $9 THEN NULL ELSE longitude END,
    updated_at  = now()
WHERE id = $1
RETURNING ` + profileColumns

type UpdateProfileParams struct {
	ID         string      `json:"id"`
	Username   pgtype.Text `json:"username"`
	PostalCode pgtype.Text `json:"postal_code"`
	City       pgtype.Text `json:"city"`
	PetName    pgtype.Text `json:"pet_name"`
	PetType    pgtype.Text `json:"pet_type"`
	PetGender  pgtype.Text `json:"pet_gender"`
	Bio        pgtype.Text `json:"bio"`
	// A changed location invalidates the stored coordinates until the
	// geocode task repopulates them.
	ClearCoordinates bool `json:"clear_coordinates"`
}

func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) (Profile, error) {
	row := q.db.QueryRow(ctx, updateProfile,
		arg.ID,
		arg.Username,
		arg.PostalCode,
		arg.City,
		arg.PetName,
		arg.PetType,
		arg.PetGender,
		arg.Bio,
		arg.ClearCoordinates,
	)
	return scanProfile(row)
}

const updateProfileAvatar = `
UPDATE profiles SET avatar_url = $2, updated_at = now() WHERE id = $1
RETURNING ` + profileColumns

type UpdateProfileAvatarParams struct {
	ID        string `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

func (q *Queries) UpdateProfileAvatar(ctx context.Context, arg UpdateProfileAvatarParams) (Profile, error) {
	row := q.db.QueryRow(ctx, updateProfileAvatar, arg.ID, arg.AvatarURL)
	return scanProfile(row)
}

const updateProfileCoordinates = `
UPDATE profiles SET latitude = $2, longitude = $3, updated_at = now() WHERE id = $1`

type UpdateProfileCoordinatesParams struct {
	ID        string        `json:"id"`
	Latitude  pgtype.Float8 `json:"latitude"`
	Longitude pgtype.Float8 `json:"longitude"`
}

func (q *Queries) UpdateProfileCoordinates(ctx context.Context, arg UpdateProfileCoordinatesParams) error {
	_, err := q.db.Exec(ctx, updateProfileCoordinates, arg.ID, arg.Latitude, arg.Longitude)
	return err
}

const listProfileCoordinates = `
SELECT id, latitude, longitude FROM profiles`

type ListProfileCoordinatesRow struct {
	ID        string        `json:"id"`
	Latitude  pgtype.Float8 `json:"latitude"`
	Longitude pgtype.Float8 `json:"longitude"`
}

func (q *Queries) ListProfileCoordinates(ctx context.Context) ([]ListProfileCoordinatesRow, error) {
	rows, err := q.db.Query(ctx, listProfileCoordinates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ListProfileCoordinatesRow{}
	for rows.Next() {
		var i ListProfileCoordinatesRow
		if err := rows.Scan(&i.ID, &i.Latitude, &i.Longitude); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listProfilesByIDs = `
SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1::text[])`

func (q *Queries) ListProfilesByIDs(ctx context.Context, ids []string) ([]Profile, error) {
	rows, err := q.db.Query(ctx, listProfilesByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Profile{}
	for rows.Next() {
		i, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
