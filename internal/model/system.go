package model

// VersionInfo pairs the binary's version with the applied migration version.
type VersionInfo struct {
	AppVersion    string `json:"app_version"`
	SchemaVersion int64  `json:"schema_version"`
}
