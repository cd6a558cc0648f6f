package catalog

import "github.com/google/uuid"

// idNamespace scopes derived track ids so they never collide with other
// UUIDv5 users.
var idNamespace = uuid.MustParse("0b6f6c52-7c1e-4d0b-9a8a-5f6e3c1d2a90")

// DeriveID returns a stable id for records that carry none. The same
// (title, artist, path) always yields the same id, across processes.
func DeriveID(title, artist, path string) string {
	return uuid.NewSHA1(idNamespace, []byte(title+"\x00"+artist+"\x00"+path)).String()
}
