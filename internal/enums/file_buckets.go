package enums

const (
	FILE_BUCKET_USER_PROFILE = "user-profile-photos"
)
