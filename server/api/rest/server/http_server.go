package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ahachul/ahachul-backend/common/certificates"
	"github.com/ahachul/ahachul-backend/common/logger"
)

type TLSConfig struct {
	CertificateFile                    certificates.CertificateFile
	PrivateKeyFile                     certificates.PrivateKeyFile
	AutoCreateCertificate              AutoCreateServerCertificate
	AutoCreatedCertificateHost         string
	AutoCreatedCertificateOrganization string
}

type HTTPServerConfig struct {
	Address           string
	TLSConfig         *TLSConfig
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func (c *HTTPServerConfig) GetAddressHost() string {
	if strings.Contains(c.Address, ":") {
		host, _, err := net.SplitHostPort(c.Address)
		if err != nil {
			return ""
		}
		return host
	} else {
		return c.Address // no port to the entire string is the host
	}
}

func (c *HTTPServerConfig) GetAddressPort() string {
	if strings.Contains(c.Address, ":") {
		_, port, err := net.SplitHostPort(c.Address)
		if err != nil {
			return ""
		}
		return port
	} else {
		return "" // no port
	}
}

// AutoCreateServerCertificate is a setting to specify whether to automatically create a key pair and certificate
// for the server if not currently configured.
type AutoCreateServerCertificate bool

func (b AutoCreateServerCertificate) Bool() bool {
	return bool(b)
}

// APIServer is implemented by HTTPServer and HttpAPITestServer
type APIServer interface {
	Start()
	Stop(ctx context.Context) error
	GetServerURL() string
	GetHTTPServer() *http.Server
	GetCertificateFile() certificates.CertificateFile
}

type HTTPServerFactory = func(handler http.Handler, config HTTPServerConfig, log logger.Log) (APIServer, error)

func RealHTTPServerFactory() HTTPServerFactory {
	return func(handler http.Handler, config HTTPServerConfig, log logger.Log) (APIServer, error) {
		return NewHTTPServer(handler, config, log)
	}
}

// HTTPServer is an HTTP(S) server that can serve ahachul API requests.
type HTTPServer struct {
	httpServer *http.Server
	config     HTTPServerConfig
	log        logger.Log
}

func NewHTTPServer(
	handler http.Handler,
	config HTTPServerConfig,
	log logger.Log,
) (*HTTPServer, error) {
	httpServer := &http.Server{
		Addr:              config.Address,
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
	if config.TLSConfig != nil {
		if config.TLSConfig.AutoCreateCertificate.Bool() {
			// Create a self-signed server certificate if we don't have a certificate already configured
			created, err := certificates.GenerateServerSelfSignedCertificate(
				config.TLSConfig.CertificateFile,
				config.TLSConfig.PrivateKeyFile,
				config.TLSConfig.AutoCreatedCertificateHost,
				config.TLSConfig.AutoCreatedCertificateOrganization,
			)
			if err != nil {
				return nil, fmt.Errorf("error ensuring server certificate exists: %w", err)
			}
			if created {
				log.Infof("Created private key file and certificate for server")
			} else {
				log.Infof("Found private key file and server certificate for server")
			}
		}
		httpServer.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	server := &HTTPServer{
		httpServer: httpServer,
		config:     config,
		log:        log,
	}
	return server, nil
}

// Start starts listening on the API server HTTP port.
// ListenAndServeTLS is called on a goroutine so this function returns immediately.
func (s *HTTPServer) Start() {
	// Start the main server
	go func() {
		var err error
		if s.config.TLSConfig != nil {
			s.log.Infof("HTTPS listening on %s", s.httpServer.Addr)
			err = s.httpServer.ListenAndServeTLS(s.config.TLSConfig.CertificateFile.String(), s.config.TLSConfig.PrivateKeyFile.String())
		} else {
			s.log.Infof("HTTP listening on %s", s.httpServer.Addr)
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			// If we can't start the main HTTP server then log an error and terminate the process
			s.log.Fatalf("Error starting server: %s", err)
		}
	}()
}

// Stop shuts down the HTTP server that is listening on the API server HTTPS port.
// The server is shut down gracefully, allowing all existing HTTP requests to complete up until a
// timeout period expires.
// Shutdown should only be called once.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("error shutting down HTTP server: %w", err)
	}
	return nil
}

func (s *HTTPServer) GetServerURL() string {
	if s.config.TLSConfig != nil {
		return fmt.Sprintf("https://%s", s.httpServer.Addr)
	}
	return fmt.Sprintf("http://%s", s.httpServer.Addr)
}

func (s *HTTPServer) GetHTTPServer() *http.Server {
	return s.httpServer
}

func (s *HTTPServer) GetCertificateFile() certificates.CertificateFile {
	if s.config.TLSConfig == nil {
		s.log.Panic("TLS is not enabled")
	}
	return s.config.TLSConfig.CertificateFile
}
