package certificates

import (
	"crypto/tls"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
)

func TestGenerateServerSelfSignedCertificate(t *testing.T) {
	dir := t.TempDir()
	certFile := CertificateFile(filepath.Join(dir, "tls", "cert.pem"))
	keyFile := PrivateKeyFile(filepath.Join(dir, "tls", "key.pem"))

	created, err := GenerateServerSelfSignedCertificate(certFile, keyFile, "localhost,127.0.0.1", "ahachul")
	require.NoError(t, err)
	require.True(t, created)

	_, err = tls.LoadX509KeyPair(certFile.String(), keyFile.String())
	require.NoError(t, err)

	// Existing files are left alone
	created, err = GenerateServerSelfSignedCertificate(certFile, keyFile, "localhost", "ahachul")
	require.NoError(t, err)
	require.False(t, created)

	key, err := LoadECDSAPrivateKeyFromPEMFile(keyFile)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestGenerateServerSelfSignedCertificateRequiresHost(t *testing.T) {
	dir := t.TempDir()
	_, err := GenerateServerSelfSignedCertificate(
		CertificateFile(filepath.Join(dir, "cert.pem")),
		PrivateKeyFile(filepath.Join(dir, "key.pem")),
		"",
		"ahachul")
	require.Error(t, err)
}

func TestGetECDSAPrivateKeyFromPEMRejectsGarbage(t *testing.T) {
	_, err := GetECDSAPrivateKeyFromPEM("not a key")
	require.Error(t, err)
	require.True(t, gerror.IsValidationFailed(err))
}
