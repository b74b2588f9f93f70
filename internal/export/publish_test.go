package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       PublishConfig
		expectErr string
		expected  PublishConfig
	}{
		{
			name: "defaults applied",
			cfg:  PublishConfig{URL: "http://localhost:3000", Event: "incidents"},
			expected: PublishConfig{
				URL:       "http://localhost:3000",
				Namespace: "/",
				Event:     "incidents",
				Timeout:   DefaultPublishTimeout,
			},
		},
		{
			name: "explicit values kept",
			cfg:  PublishConfig{URL: "wss://hub.example/socket.io/", Namespace: "/ops", Event: "e", Timeout: time.Second},
			expected: PublishConfig{
				URL:       "wss://hub.example/socket.io/",
				Namespace: "/ops",
				Event:     "e",
				Timeout:   time.Second,
			},
		},
		{name: "missing url", cfg: PublishConfig{Event: "e"}, expectErr: "url is required"},
		{name: "missing event", cfg: PublishConfig{URL: "http://x"}, expectErr: "event is required"},
		{name: "bad scheme", cfg: PublishConfig{URL: "ftp://x", Event: "e"}, expectErr: "unsupported"},
		{name: "no host", cfg: PublishConfig{URL: "http://", Event: "e"}, expectErr: "no host"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPublisher(tc.cfg)
			if tc.expectErr != "" {
				require.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, p.Config())
		})
	}
}
