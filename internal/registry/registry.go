// Package registry maps backup resource kinds to their user-facing
// connection fields and the flat url/login/password/api_key shape the
// backend stores. Each kind owns a bidirectional transform between the
// two representations, selected through a single dispatch table.
package registry

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind identifies one source or destination credential shape.
type Kind string

const (
	KindPostgres      Kind = "postgres"
	KindElasticsearch Kind = "elasticsearch"
	KindVault         Kind = "vault"
	KindQdrant        Kind = "qdrant"

	KindS3      Kind = "s3"
	KindSMB     Kind = "smb"
	KindSFTP    Kind = "sftp"
	KindLocalFS Kind = "local_fs"
)

// Family groups kinds by the collection they belong to.
type Family string

const (
	FamilySource      Family = "source"
	FamilyDestination Family = "destination"
)

// LocalFSRoot is the fixed prefix all local filesystem destinations live
// under. The relative path a user supplies is appended below it.
const LocalFSRoot = "/mnt/backups"

// SourceKinds lists the supported source kinds in display order.
var SourceKinds = []Kind{KindPostgres, KindElasticsearch, KindVault, KindQdrant}

// DestinationKinds lists the supported destination kinds in display order.
var DestinationKinds = []Kind{KindS3, KindSMB, KindSFTP, KindLocalFS}

// Fields holds the typed connection fields a form collects for one kind.
// Only the subset relevant to the kind is used; the rest stay zero.
type Fields struct {
	Host     string
	Port     string
	Database string

	Bucket   string
	Endpoint string
	Region   string

	// Path is the UNC path for smb, the remote path for sftp, and the
	// relative path under LocalFSRoot for local_fs.
	Path string

	Login    string
	Password string
	APIKey   string
}

// Credentials is the full payload shape the backend expects on create.
// Blank secrets are carried as explicit nulls.
type Credentials struct {
	URL      string  `json:"url"`
	Login    *string `json:"login"`
	Password *string `json:"password"`
	APIKey   *string `json:"api_key"`
}

// CredentialsPatch is the sparse shape used on update. Fields the user
// left blank are omitted so the backend keeps its stored values.
type CredentialsPatch struct {
	URL      *string `json:"url,omitempty"`
	Login    *string `json:"login,omitempty"`
	Password *string `json:"password,omitempty"`
	APIKey   *string `json:"api_key,omitempty"`
}

type codec struct {
	family    Family
	required  func(Fields) []string
	encodeURL func(Fields) string
	decodeURL func(string, *Fields)
}

var codecs = map[Kind]codec{
	KindPostgres: {
		family:   FamilySource,
		required: requireHostPortDatabase,
		encodeURL: func(f Fields) string {
			return fmt.Sprintf("postgres://%s:%s/%s", f.Host, f.Port, f.Database)
		},
		decodeURL: decodePostgresURL,
	},
	KindElasticsearch: {
		family:    FamilySource,
		required:  requireHostPort,
		encodeURL: encodeHostPort,
		decodeURL: decodeHostPort,
	},
	KindVault: {
		family:    FamilySource,
		required:  requireHostPort,
		encodeURL: encodeHostPort,
		decodeURL: decodeHostPort,
	},
	KindQdrant: {
		family:    FamilySource,
		required:  requireHostPort,
		encodeURL: encodeHostPort,
		decodeURL: decodeHostPort,
	},
	KindS3: {
		family: FamilyDestination,
		required: func(f Fields) []string {
			return missing(field{"bucket", f.Bucket}, field{"endpoint", f.Endpoint}, field{"region", f.Region})
		},
		encodeURL: func(f Fields) string {
			q := url.Values{}
			q.Set("endpoint_url", f.Endpoint)
			q.Set("region_name", f.Region)
			return fmt.Sprintf("s3://%s/?%s", f.Bucket, q.Encode())
		},
		decodeURL: decodeS3URL,
	},
	KindSMB: {
		family: FamilyDestination,
		required: func(f Fields) []string {
			return missing(field{"path", f.Path})
		},
		encodeURL: func(f Fields) string { return f.Path },
		decodeURL: func(raw string, f *Fields) { f.Path = raw },
	},
	KindSFTP: {
		family: FamilyDestination,
		required: func(f Fields) []string {
			return missing(field{"path", f.Path})
		},
		encodeURL: func(f Fields) string { return "sftp://" + f.Path },
		decodeURL: func(raw string, f *Fields) {
			f.Path = strings.TrimPrefix(raw, "sftp://")
		},
	},
	KindLocalFS: {
		family:   FamilyDestination,
		required: func(Fields) []string { return nil },
		encodeURL: func(f Fields) string {
			rel := strings.Trim(f.Path, "/")
			if rel == "" {
				return LocalFSRoot
			}
			return LocalFSRoot + "/" + rel
		},
		decodeURL: func(raw string, f *Fields) {
			rel := strings.TrimPrefix(raw, LocalFSRoot)
			f.Path = strings.Trim(rel, "/")
		},
	},
}

// Known reports whether k is a supported kind.
func Known(k Kind) bool {
	_, ok := codecs[k]
	return ok
}

// FamilyOf returns the family a kind belongs to, or "" for unknown kinds.
func FamilyOf(k Kind) Family {
	return codecs[k].family
}

// ParseKind validates a user-supplied kind name against a family.
func ParseKind(family Family, s string) (Kind, error) {
	k := Kind(s)
	c, ok := codecs[k]
	if !ok || c.family != family {
		return "", fmt.Errorf("unknown %s type %q", family, s)
	}
	return k, nil
}

// HasConnectionFields reports whether any non-secret connection field is
// set. Secrets and the login are excluded: entering only those on an edit
// means "keep the stored URL".
func (f Fields) HasConnectionFields() bool {
	return f.Host != "" || f.Port != "" || f.Database != "" ||
		f.Bucket != "" || f.Endpoint != "" || f.Region != "" || f.Path != ""
}

// MissingFields returns the names of required fields that are empty for
// the kind. An empty result means Encode will produce a non-empty URL.
func MissingFields(k Kind, f Fields) []string {
	c, ok := codecs[k]
	if !ok {
		return []string{"kind"}
	}
	return c.required(f)
}

// Encode produces the full create payload for a kind. When a required
// field is missing the URL is the empty sentinel, which gates submission
// downstream. Blank secrets become explicit nulls.
func Encode(k Kind, f Fields) Credentials {
	c, ok := codecs[k]
	if !ok || len(c.required(f)) > 0 {
		return Credentials{
			Login:    optional(f.Login),
			Password: optional(f.Password),
			APIKey:   optional(f.APIKey),
		}
	}
	return Credentials{
		URL:      c.encodeURL(f),
		Login:    optional(f.Login),
		Password: optional(f.Password),
		APIKey:   optional(f.APIKey),
	}
}

// EncodeUpdate produces the sparse update payload for a kind. The URL is
// included only when the non-secret fields are complete; secrets and the
// login are included only when the user actually entered a value.
func EncodeUpdate(k Kind, f Fields) CredentialsPatch {
	var patch CredentialsPatch
	c, ok := codecs[k]
	if ok && len(c.required(f)) == 0 {
		u := c.encodeURL(f)
		patch.URL = &u
	}
	patch.Login = optional(f.Login)
	patch.Password = optional(f.Password)
	patch.APIKey = optional(f.APIKey)
	return patch
}

// Decode parses a stored resource's url and login back into typed fields
// for pre-populating an edit form. It tolerates a missing or malformed
// url by leaving the affected fields at their empty defaults, and never
// fills secret fields: password and api_key are write-only.
func Decode(k Kind, rawURL, login string) Fields {
	f := Fields{Login: login}
	c, ok := codecs[k]
	if !ok || rawURL == "" {
		return f
	}
	c.decodeURL(rawURL, &f)
	return f
}

type field struct {
	name  string
	value string
}

func missing(fields ...field) []string {
	var out []string
	for _, f := range fields {
		if f.value == "" {
			out = append(out, f.name)
		}
	}
	return out
}

func requireHostPort(f Fields) []string {
	return missing(field{"host", f.Host}, field{"port", f.Port})
}

func requireHostPortDatabase(f Fields) []string {
	return missing(field{"host", f.Host}, field{"port", f.Port}, field{"database", f.Database})
}

func encodeHostPort(f Fields) string {
	return f.Host + ":" + f.Port
}

func decodeHostPort(raw string, f *Fields) {
	host, port, ok := strings.Cut(raw, ":")
	if !ok {
		f.Host = raw
		return
	}
	f.Host = host
	f.Port = port
}

func decodePostgresURL(raw string, f *Fields) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "postgres" {
		return
	}
	f.Host = u.Hostname()
	f.Port = u.Port()
	f.Database = strings.TrimPrefix(u.Path, "/")
}

func decodeS3URL(raw string, f *Fields) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" {
		return
	}
	f.Bucket = u.Host
	q := u.Query()
	f.Endpoint = q.Get("endpoint_url")
	f.Region = q.Get("region_name")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
