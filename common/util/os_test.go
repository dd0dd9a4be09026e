package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterOSArgs(t *testing.T) {
	var whitelist = []string{
		"database_driver",
		"blob_store_type",
		"blob_store_aws_s3_bucket_name",
		"oauth_kakao_client_id",
		"lost112_import_enabled",
	}

	var in = []string{
		"/usr/bin/ahachul-server",
		"--database_driver",
		"postgres",
		"--database_connection_string",
		"postgres://ahachul:hunter2@db/ahachul",
		"--blob_store_type",
		"AWS_S3",
		"--blob_store_aws_s3_bucket_name",
		"ahachul-files",
		"--jwt_secret_key",
		"topsecret",
		"--oauth_kakao_client_id",
		"3f2b9c",
		"--lost112_import_enabled",
	}

	var expected = []string{
		"/usr/bin/ahachul-server",
		"--database_driver",
		"postgres",
		"--database_connection_string",
		"*************************************",
		"--blob_store_type",
		"AWS_S3",
		"--blob_store_aws_s3_bucket_name",
		"ahachul-files",
		"--jwt_secret_key",
		"*********",
		"--oauth_kakao_client_id",
		"3f2b9c",
		"--lost112_import_enabled",
	}

	require.Equal(t, expected, FilterOSArgs(in, whitelist))
}

func TestTruncateStringToMaxLength(t *testing.T) {
	require.Equal(t, "지갑", TruncateStringToMaxLength("지갑", 10))
	require.Equal(t, "검정색 ...", TruncateStringToMaxLength("검정색 가죽 지갑", 7))
	require.Equal(t, "ab", TruncateStringToMaxLength("abcdef", 2))
}

func TestEscapeFileName(t *testing.T) {
	key := "lost-posts/a b.png"
	escaped := EscapeFileName(key)
	require.Equal(t, filepath.Join("lost-posts", "a+b.png"), escaped)
}
