package upload

const (
	SelectUploadByID = `
		SELECT up.id, up.uuid, up.user_id, u.uuid, up.file_name, up.download_url, up.storage_key, up.columns, up.created_at
		FROM uploads up
		JOIN users u ON u.id = up.user_id
		WHERE up.uuid = $1
	`
	SelectUserUploads = `
		SELECT up.id, up.uuid, up.user_id, u.uuid, up.file_name, up.download_url, up.storage_key, up.columns, up.created_at
		FROM uploads up
		JOIN users u ON u.id = up.user_id
		WHERE up.user_id = $1
		ORDER BY up.created_at DESC
	`
	SelectAllUploads = `
		SELECT up.id, up.uuid, up.user_id, u.uuid, up.file_name, up.download_url, up.storage_key, up.columns, up.created_at, u.name, u.email
		FROM uploads up
		JOIN users u ON u.id = up.user_id
		ORDER BY up.created_at DESC
	`
	InsertUpload = `
		INSERT INTO uploads (user_id, file_name, download_url, storage_key, columns)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		  id, uuid, user_id, file_name, download_url, storage_key, columns, created_at
	`
	DeleteUploadByID = `DELETE FROM uploads WHERE uuid = $1`
	DeleteByUserID   = `DELETE FROM uploads WHERE user_id = $1`
	CountAllUploads  = `SELECT count(*) FROM uploads`
	CountPerUser     = `
		SELECT u.uuid, count(*)
		FROM uploads up
		JOIN users u ON u.id = up.user_id
		GROUP BY u.uuid
	`
)
