package service

import "strings"

// resolveLang uppercases a requested language code, falling back to def.
func resolveLang(raw, def string) string {
	if l := strings.ToUpper(strings.TrimSpace(raw)); l != "" {
		return l
	}
	return def
}
