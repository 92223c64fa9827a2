package config

type SecurityConfig interface {
	GetCookieSecret() []byte
	GetSecureCookies() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetCookieSecret signs the flash cookie. The default is only suitable for DEV.
func (Security) GetCookieSecret() []byte {
	return []byte(GetEnv("COOKIE_SECRET", "college-portal-dev-cookie-secret"))
}

func (Security) GetSecureCookies() bool {
	return GetEnv("SECURE_COOKIES", "false") == "true"
}
