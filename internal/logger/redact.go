package logger

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveFields are attribute names whose values never reach the output.
var SensitiveFields = []string{
	"authorization",
	"confirmation_code",
	"password",
	"secret",
	"token",
	"email",
}

var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)
	pasetoPattern = regexp.MustCompile(`v4\.(public|local)\.[a-zA-Z0-9\-_]{20,}`)
)

func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveFields)+2)
	for _, name := range SensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	opts = append(opts,
		masq.WithRegex(bearerPattern),
		masq.WithRegex(pasetoPattern),
	)
	return masq.New(opts...)
}
