//go:build !windows
// +build !windows

package app

const (
	defaultLocalBlobStoreDir      = "/var/lib/ahachul/blob"
	defaultServerCertificateDir   = "/var/lib/ahachul/server-certs"
	defaultSQLiteConnectionString = "file:/var/lib/ahachul/db/sqlite.db?cache=shared&_foreign_keys=1"
	defaultApplePrivateKeyFile    = "/var/lib/ahachul/apple-private-key.pem"
)
