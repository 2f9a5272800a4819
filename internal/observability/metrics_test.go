package observability

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/danmuck/wirepack/internal/testutil/testlog"
	"github.com/danmuck/wirepack/packer"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordMessage("node-a", DirectionOut, "1", 92, 80)
	RecordDecodeFailure("node-a", errors.Wrap(packer.ErrTruncated, "objects"))
}

func TestErrorClass(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{errors.Wrapf(packer.ErrConnectionLost, "read"), "connection_lost"},
		{errors.WithMessage(packer.ErrUnknownVariant, "Shape"), "unknown_variant"},
		{fmt.Errorf("frame: %w", packer.ErrLengthOverflow), "length_overflow"},
		{packer.ErrTrailingBytes, "trailing_bytes"},
		{errors.New("boom"), "other"},
	}
	for _, tc := range cases {
		if got := ErrorClass(tc.err); got != tc.want {
			t.Fatalf("ErrorClass(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestMetricsHandlerExposesExchangeSeries(t *testing.T) {
	RecordMessage("node-b", DirectionIn, "7", 20, 8)

	srv := httptest.NewServer(MetricsHandler(zerolog.Nop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "wirepack_exchange_messages_total") {
		t.Fatalf("exchange series missing from /metrics output")
	}
}
