//go:build windows
// +build windows

package app

const (
	defaultLocalBlobStoreDir      = "C:\\ProgramData\\ahachul\\blob"
	defaultServerCertificateDir   = "C:\\ProgramData\\ahachul\\server-certs"
	defaultSQLiteConnectionString = "file:C:\\ProgramData\\ahachul\\db\\sqlite.db?cache=shared&_foreign_keys=1"
	defaultApplePrivateKeyFile    = "C:\\ProgramData\\ahachul\\apple-private-key.pem"
)
