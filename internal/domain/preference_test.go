package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingPreferences_InDNDWindow(t *testing.T) {
	t.Parallel()
	ptr := func(v int) *int { return &v }

	testCases := []struct {
		name  string
		start *int
		end   *int
		hour  int
		want  bool
	}{
		{name: "跨午夜窗口内_深夜", start: ptr(22), end: ptr(6), hour: 23, want: true},
		{name: "跨午夜窗口内_凌晨", start: ptr(22), end: ptr(6), hour: 3, want: true},
		{name: "跨午夜窗口外", start: ptr(22), end: ptr(6), hour: 10, want: false},
		{name: "跨午夜窗口边界_结束小时不算", start: ptr(22), end: ptr(6), hour: 6, want: false},
		{name: "日间窗口内", start: ptr(9), end: ptr(17), hour: 12, want: true},
		{name: "日间窗口外", start: ptr(9), end: ptr(17), hour: 20, want: false},
		{name: "日间窗口边界_开始小时算", start: ptr(9), end: ptr(17), hour: 9, want: true},
		{name: "未设置开始小时", start: nil, end: ptr(17), hour: 12, want: false},
		{name: "未设置结束小时", start: ptr(9), end: nil, hour: 12, want: false},
		{name: "都未设置", start: nil, end: nil, hour: 12, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := RoutingPreferences{DNDStartHour: tc.start, DNDEndHour: tc.end}
			assert.Equal(t, tc.want, r.InDNDWindow(tc.hour))
		})
	}
}

func TestMaskIdentifier(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		identifier string
		want       string
	}{
		{name: "手机号", identifier: "+8613800001111", want: "+8**********11"},
		{name: "邮箱", identifier: "someone@example.com", want: "so***************om"},
		{name: "短标识全遮蔽", identifier: "abcd", want: "****"},
		{name: "空串", identifier: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MaskIdentifier(tc.identifier))
		})
	}
}
