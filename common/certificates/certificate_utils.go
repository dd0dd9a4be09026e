package certificates

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ahachul/ahachul-backend/common/gerror"
)

const certificateExpiryDuration = 5 * 365 * 24 * time.Hour // 5 years

// CertificateFile is a filename for a pem file containing an X.509 certificate
type CertificateFile string

func (f CertificateFile) String() string {
	return string(f)
}

// PrivateKeyFile is a filename for a file containing a PKCS #8 private key, e.g. the TLS key of the API server
// or a .p8 key downloaded from the Apple developer console.
type PrivateKeyFile string

func (f PrivateKeyFile) String() string {
	return string(f)
}

// GenerateServerSelfSignedCertificate checks whether a certificate and corresponding private key exist, and if not
// then a new ECDSA P256 key and self-signed certificate are created, in two separate .pem files.
// The entire path to the directory the certificate file is in will be created if it doesn't exist.
// host is a mandatory comma-separated list of hostnames and/or IP addresses to put in the certificate.
// Returns true if a new key and certificate were created.
func GenerateServerSelfSignedCertificate(
	certFilename CertificateFile,
	privateKeyFilename PrivateKeyFile,
	host string,
	organization string,
) (bool, error) {
	if len(host) == 0 {
		return false, fmt.Errorf("error creating self-signed server certificate: host name required")
	}
	if certFilename == "" || privateKeyFilename == "" {
		return false, fmt.Errorf("error checking certificate: directory and filenames must not be empty")
	}

	certDir := filepath.Dir(certFilename.String())
	certDirInfo, err := os.Stat(certDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("error checking for existence of directory %s: %w", certDir, err)
		}
		err = os.MkdirAll(certDir, 0755)
		if err != nil {
			return false, fmt.Errorf("error making certificate directory %s: %w", certDir, err)
		}
	} else if !certDirInfo.IsDir() {
		return false, fmt.Errorf("error making certificate directory %s: file is present with same name", certDir)
	}

	certFileExists, err := fileExists(certFilename.String())
	if err != nil {
		return false, err
	}
	privateKeyFileExists, err := fileExists(privateKeyFilename.String())
	if err != nil {
		return false, err
	}
	if certFileExists && !privateKeyFileExists {
		return false, fmt.Errorf("error: certificate file exists at %s but private key file is missing at %s",
			certFilename, privateKeyFilename)
	}
	if !certFileExists && privateKeyFileExists {
		return false, fmt.Errorf("error: private key file exists at %s but certificate file is missing at %s",
			privateKeyFilename, certFilename)
	}
	if certFileExists {
		return false, nil
	}

	err = generateSelfSignedCertificate(certFilename, privateKeyFilename, host, organization, certificateExpiryDuration)
	if err != nil {
		return false, fmt.Errorf("error creating private key and certificate: %w", err)
	}
	return true, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("error checking for file %s: %w", path, err)
}

func generateSelfSignedCertificate(
	certFilename CertificateFile,
	privateKeyFilename PrivateKeyFile,
	host string,
	organization string,
	validFor time.Duration,
) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("error generating private key: %w", err)
	}

	notBefore := time.Now()
	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return fmt.Errorf("error generating serial number: %w", err)
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{organization},
		},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(validFor),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		// Self-signed certs are their own CA
		IsCA: true,
	}
	for _, h := range strings.Split(host, ",") {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return fmt.Errorf("error creating certificate: %w", err)
	}
	err = writePEMFile(certFilename.String(), 0644, &pem.Block{Type: "CERTIFICATE", Bytes: derBytes})
	if err != nil {
		return fmt.Errorf("error writing certificate file: %w", err)
	}

	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return fmt.Errorf("error marshalling private key: %w", err)
	}
	err = writePEMFile(privateKeyFilename.String(), 0600, &pem.Block{Type: "PRIVATE KEY", Bytes: privateKeyBytes})
	if err != nil {
		return fmt.Errorf("error writing private key file: %w", err)
	}
	return nil
}

func writePEMFile(path string, perm os.FileMode, block *pem.Block) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if err := pem.Encode(out, block); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// LoadECDSAPrivateKeyFromPEMFile reads the first PEM block in file and parses it as a PKCS #8 ECDSA private key.
// Returns a Validation Failed error if the file does not contain an ECDSA key.
func LoadECDSAPrivateKeyFromPEMFile(file PrivateKeyFile) (*ecdsa.PrivateKey, error) {
	pemData, err := os.ReadFile(file.String())
	if err != nil {
		return nil, fmt.Errorf("error reading private key file %s: %w", file, err)
	}
	return GetECDSAPrivateKeyFromPEM(string(pemData))
}

// GetECDSAPrivateKeyFromPEM parses the first PEM block in pemData as a PKCS #8 ECDSA private key.
func GetECDSAPrivateKeyFromPEM(pemData string) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, gerror.NewErrValidationFailed("No PEM data found in private key")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, gerror.NewErrValidationFailed("Error parsing PKCS #8 private key").Wrap(err)
	}
	ecdsaKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, gerror.NewErrValidationFailed(fmt.Sprintf("Expected ECDSA private key, found %T", key))
	}
	return ecdsaKey, nil
}
