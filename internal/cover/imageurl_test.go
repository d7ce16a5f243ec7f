package cover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "forces https",
			in:   "http://books.google.com/books/content?id=abc",
			want: "https://books.google.com/books/content?id=abc",
		},
		{
			name: "strips page curl",
			in:   "https://books.google.com/books/content?id=abc&edge=curl",
			want: "https://books.google.com/books/content?id=abc",
		},
		{
			name: "upgrades zoom",
			in:   "https://books.google.com/books/content?id=abc&zoom=1",
			want: "https://books.google.com/books/content?id=abc&zoom=0",
		},
		{
			name: "combined",
			in:   "http://books.google.com/books/content?id=abc&edge=curl&zoom=1",
			want: "https://books.google.com/books/content?id=abc&zoom=0",
		},
		{
			name: "other params untouched",
			in:   "https://books.google.com/books/content?id=abc&printsec=frontcover&zoom=5",
			want: "https://books.google.com/books/content?id=abc&printsec=frontcover&zoom=5",
		},
		{
			name: "already https",
			in:   "https://example.com/cover.jpg",
			want: "https://example.com/cover.jpg",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CleanImageURL(tt.in))
		})
	}
}
