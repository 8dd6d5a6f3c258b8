package user

const (
	SelectUsers = `
		SELECT id, uuid, name, email, password_hash, is_admin, created_at
		FROM users
		ORDER BY created_at DESC
	`
	SelectUserByID = `
		SELECT id, uuid, name, email, password_hash, is_admin, created_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, name, email, password_hash, is_admin, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, uuid, name, email, password_hash, is_admin, created_at
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`
	DeleteUserByID = `
		DELETE FROM users
		WHERE id = $1
		RETURNING
		  id, uuid, name, email, password_hash, is_admin, created_at
	`
	CountAllUsers  = `SELECT count(*) FROM users`
	CountAllAdmins = `SELECT count(*) FROM users WHERE is_admin`
)
