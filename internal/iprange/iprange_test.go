package iprange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    IPv4
		wantErr bool
	}{
		{name: "dotted quad", input: "192.168.1.42", want: IPv4{192, 168, 1, 42}},
		{name: "surrounding space", input: "  10.0.0.1\n", want: IPv4{10, 0, 0, 1}},
		{name: "zero", input: "0.0.0.0", want: IPv4{}},
		{name: "broadcast", input: "255.255.255.255", want: IPv4{255, 255, 255, 255}},
		{name: "not an ip", input: "not-an-ip", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "octet overflow", input: "192.168.1.256", wantErr: true},
		{name: "three octets", input: "192.168.1", wantErr: true},
		{name: "ipv6", input: "fe80::1", wantErr: true},
		{name: "mapped ipv6", input: "::ffff:192.168.1.1", wantErr: true},
		{name: "cidr", input: "192.168.1.0/24", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAddressSyntax)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIPv4Ordering(t *testing.T) {
	a := MustParse("192.168.1.9")
	b := MustParse("192.168.1.10")
	c := MustParse("192.168.2.0")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, uint32(0xC0A8010A), b.Uint32())
	assert.Equal(t, b, FromUint32(b.Uint32()))
}

func TestIPv4WithLastOctetCopies(t *testing.T) {
	local := MustParse("10.1.2.3")
	moved := local.WithLastOctet(200)

	assert.Equal(t, "10.1.2.200", moved.String())
	assert.Equal(t, "10.1.2.3", local.String())
}

func TestIPv4JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		IP IPv4 `json:"ip"`
	}{IP: MustParse("172.16.0.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip":"172.16.0.5"}`, string(data))

	var back struct {
		IP IPv4 `json:"ip"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, MustParse("172.16.0.5"), back.IP)
}

func TestAuto(t *testing.T) {
	locals := []string{"192.168.1.42", "10.0.0.0", "10.0.0.255", "172.31.200.7", "1.2.3.4"}

	for _, s := range locals {
		t.Run(s, func(t *testing.T) {
			local := MustParse(s)
			r := Auto(local)

			assert.Equal(t, byte(0), r.Start.Octet(3))
			assert.Equal(t, byte(255), r.End.Octet(3))
			assert.True(t, r.Start.SamePrefix24(local))
			assert.True(t, r.End.SamePrefix24(local))
			assert.LessOrEqual(t, r.Start.Compare(r.End), 0)
			assert.Equal(t, 256, r.Count())
		})
	}
}

func TestAutoScenario(t *testing.T) {
	r := Auto(MustParse("192.168.1.42"))

	assert.Equal(t, "192.168.1.0", r.Start.String())
	assert.Equal(t, "192.168.1.255", r.End.String())
	assert.Equal(t, "192.168.1.0 - 192.168.1.255", r.String())
}

func TestParseManual(t *testing.T) {
	r, err := ParseManual("192.168.1.10", "192.168.1.20")
	require.NoError(t, err)
	assert.Equal(t, 11, r.Count())

	_, err = ParseManual("not-an-ip", "192.168.1.20")
	require.ErrorIs(t, err, ErrInvalidAddressSyntax)
	assert.Contains(t, err.Error(), "start")

	_, err = ParseManual("192.168.1.10", "999.1.1.1")
	require.ErrorIs(t, err, ErrInvalidAddressSyntax)
	assert.Contains(t, err.Error(), "end")
}

func TestParseManualDoesNotValidateOrder(t *testing.T) {
	r, err := ParseManual("192.168.1.200", "192.168.1.100")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Targets(MustParse("192.168.1.1")))
}

func TestValidate(t *testing.T) {
	local := MustParse("192.168.1.42")

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "inside", start: "192.168.1.1", end: "192.168.1.254"},
		{name: "single", start: "192.168.1.5", end: "192.168.1.5"},
		{name: "reversed", start: "192.168.1.9", end: "192.168.1.1", wantErr: ErrRangeOrder},
		{name: "other subnet", start: "192.168.2.1", end: "192.168.2.9", wantErr: ErrOutsideLocalSubnet},
		{name: "end outside", start: "192.168.1.1", end: "192.168.3.1", wantErr: ErrOutsideLocalSubnet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseManual(tt.start, tt.end)
			require.NoError(t, err)

			err = r.Validate(local)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetsUseLocalPrefix(t *testing.T) {
	local := MustParse("192.168.1.42")
	r, err := ParseManual("10.9.8.3", "10.9.8.5")
	require.NoError(t, err)
	assert.False(t, r.PrefixMatches(local))

	got := r.Targets(local)
	require.Len(t, got, 3)
	assert.Equal(t, "192.168.1.3", got[0].String())
	assert.Equal(t, "192.168.1.4", got[1].String())
	assert.Equal(t, "192.168.1.5", got[2].String())
}

func TestTargetsFullRange(t *testing.T) {
	local := MustParse("192.168.1.42")
	got := Auto(local).Targets(local)

	require.Len(t, got, 256)
	for i, ip := range got {
		assert.Equal(t, byte(i), ip.Octet(3))
		assert.True(t, ip.SamePrefix24(local))
	}
}
