package enums

const (
	ROLE_TENANT   = "tenant"
	ROLE_LANDLORD = "landlord"
)

func IsValidRole(role string) bool {
	return role == ROLE_TENANT || role == ROLE_LANDLORD
}
