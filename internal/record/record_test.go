package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	row := Row{ID: 42, Username: "user1", Email: "person1@example.com"}

	var buf [Size]byte
	Encode(row, buf[:])

	got := Decode(buf[:])
	require.Equal(t, row, got)
}

func TestEncodeZeroPadsShorterFields(t *testing.T) {
	long := Row{ID: 1, Username: string(make([]byte, UsernameMaxLen)), Email: string(make([]byte, EmailMaxLen))}
	var buf [Size]byte
	for i := range buf {
		buf[i] = 0xFF
	}
	Encode(Row{ID: 1, Username: "a", Email: "b"}, buf[:])

	got := Decode(buf[:])
	require.Equal(t, "a", got.Username)
	require.Equal(t, "b", got.Email)
	_ = long
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		row     Row
		wantErr bool
	}{
		{"ok", Row{Username: "user1", Email: "a@b.com"}, false},
		{"username too long", Row{Username: string(make([]byte, UsernameMaxLen+1))}, true},
		{"email too long", Row{Email: string(make([]byte, EmailMaxLen+1))}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.row.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEncodePanicsOnShortBuffer(t *testing.T) {
	require.Panics(t, func() {
		Encode(Row{}, make([]byte, Size-1))
	})
}
