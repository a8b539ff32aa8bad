// Package entity contains the core business objects of the project.
package entity

// DeviceIdentity is the opaque, backend-assigned identifier that correlates
// this browser installation with its subscription record. It is created on the
// first successful registration and reused verbatim on every resubscription.
type DeviceIdentity string

// IsAssigned reports whether the backend has assigned an identity yet.
func (d DeviceIdentity) IsAssigned() bool {
	return d != ""
}

func (d DeviceIdentity) String() string {
	return string(d)
}
