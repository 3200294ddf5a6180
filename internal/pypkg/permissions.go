package pypkg

// BasePermissions are the only permissions an apikey_permissions.txt may
// request beyond comments.
var BasePermissions = []string{
	"read_data",
	"read_function",
}
