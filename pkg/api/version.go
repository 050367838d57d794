package api

const (
	ApiVersion    = "v1"
	ServerVersion = "0.3.0"
)

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

type ReadyRsp struct {
	Ready       bool   `json:"ready"`
	Fingerprint string `json:"fingerprint,omitempty"`
}
