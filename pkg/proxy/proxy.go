package proxy

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingAt       = errors.New("invalid proxy credentials: missing '@'")
	ErrMissingPort     = errors.New("invalid proxy credentials: missing ':port'")
	ErrMissingPassword = errors.New("invalid proxy credentials: missing password separator ':'")
	ErrEmptySpec       = errors.New("empty proxy specification")
)

var supportedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"socks5": true,
}

// Spec describes one proxy. It is written either as a single string
// ("http://u:p@host:port", "u:p@host:port", "host:port") or as a mapping
// with scheme, host, port, username and password keys.
type Spec struct {
	Raw      string `yaml:"-" json:"-"`
	Scheme   string `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	Host     string `yaml:"host,omitempty" json:"host,omitempty"`
	Port     string `yaml:"port,omitempty" json:"port,omitempty"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

// Credentials are the parts of a "user:pass@host:port" string
type Credentials struct {
	Host     string
	Port     string
	Username string
	Password string
}

// ParseCredentials splits a "user:pass@host:port" string. Usernames may
// contain ';' and '.' as used by residential gateway providers.
func ParseCredentials(s string) (Credentials, error) {
	auth, hostport, ok := strings.Cut(s, "@")
	if !ok {
		return Credentials{}, ErrMissingAt
	}
	host, port, ok := strings.Cut(hostport, ":")
	if !ok {
		return Credentials{}, ErrMissingPort
	}
	user, pass, ok := strings.Cut(auth, ":")
	if !ok {
		return Credentials{}, ErrMissingPassword
	}
	return Credentials{Host: host, Port: port, Username: user, Password: pass}, nil
}

// FromString builds a Spec from its string form
func FromString(s string) Spec {
	return Spec{Raw: s}
}

// URL resolves the spec into a proxy URL usable by an HTTP transport
func (s Spec) URL() (*url.URL, error) {
	raw := strings.TrimSpace(s.Raw)
	if raw == "" && s.Host == "" {
		return nil, ErrEmptySpec
	}
	if raw != "" {
		return parseString(raw)
	}

	scheme := s.Scheme
	if scheme == "" {
		scheme = "http"
	}
	if !supportedSchemes[strings.ToLower(scheme)] {
		return nil, fmt.Errorf("unsupported proxy scheme %q", scheme)
	}
	if s.Port == "" {
		return nil, fmt.Errorf("proxy %s: %w", s.Host, ErrMissingPort)
	}
	u := &url.URL{
		Scheme: strings.ToLower(scheme),
		Host:   s.Host + ":" + s.Port,
	}
	if s.Username != "" && s.Password != "" {
		u.User = url.UserPassword(s.Username, s.Password)
	}
	return u, nil
}

func parseString(raw string) (*url.URL, error) {
	if scheme, _, ok := strings.Cut(raw, "://"); ok {
		if !supportedSchemes[strings.ToLower(scheme)] {
			return nil, fmt.Errorf("unsupported proxy scheme %q", scheme)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q: missing host", raw)
		}
		return u, nil
	}

	if strings.Contains(raw, "@") {
		creds, err := ParseCredentials(raw)
		if err != nil {
			return nil, err
		}
		return &url.URL{
			Scheme: "http",
			User:   url.UserPassword(creds.Username, creds.Password),
			Host:   creds.Host + ":" + creds.Port,
		}, nil
	}

	if !strings.Contains(raw, ":") {
		return nil, fmt.Errorf("proxy %q: %w", raw, ErrMissingPort)
	}
	return &url.URL{Scheme: "http", Host: raw}, nil
}

// Validate reports whether the spec resolves to a usable URL
func (s Spec) Validate() error {
	_, err := s.URL()
	return err
}

// String returns the proxy URL with the password redacted
func (s Spec) String() string {
	u, err := s.URL()
	if err != nil {
		return s.Raw
	}
	return u.Redacted()
}

// UnmarshalYAML accepts a scalar string or a mapping
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = Spec{Raw: node.Value}
		return nil
	}
	var m map[string]interface{}
	if err := node.Decode(&m); err != nil {
		return fmt.Errorf("decode proxy: %w", err)
	}
	*s = fromMap(m)
	return nil
}

// MarshalYAML writes the string form back as a scalar
func (s Spec) MarshalYAML() (interface{}, error) {
	if s.Raw != "" {
		return s.Raw, nil
	}
	type plain Spec
	return plain(s), nil
}

// UnmarshalJSON accepts a string or an object. JSON5 input is tolerated.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json5.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode proxy: %w", err)
	}
	switch t := v.(type) {
	case string:
		*s = Spec{Raw: t}
	case map[string]interface{}:
		*s = fromMap(t)
	default:
		return fmt.Errorf("proxy must be a string or an object, got %T", v)
	}
	return nil
}

func fromMap(m map[string]interface{}) Spec {
	str := func(key string) string {
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return Spec{
		Scheme:   str("scheme"),
		Host:     str("host"),
		Port:     str("port"),
		Username: str("username"),
		Password: str("password"),
	}
}
