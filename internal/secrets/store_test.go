package secrets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAndFetchAdminPassword(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := FetchAdminPassword()
	require.Error(t, err, "nothing stored yet")

	require.NoError(t, StoreAdminPassword("s3cret"))

	got, err := FetchAdminPassword()
	require.NoError(t, err)
	require.Equal(t, "s3cret", got)

	// overwrite
	require.NoError(t, StoreAdminPassword("other"))
	got, err = FetchAdminPassword()
	require.NoError(t, err)
	require.Equal(t, "other", got)
}

func TestStoreAdminPasswordRejectsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.Error(t, StoreAdminPassword(""))
}

func TestVerify(t *testing.T) {
	t.Parallel()

	require.True(t, Verify("admin123", "admin123"))
	require.False(t, Verify("admin124", "admin123"))
	require.False(t, Verify("", "admin123"))
}
