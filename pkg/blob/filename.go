package blob

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const maxBaseNameLen = 100

var (
	underscoreRunRe = regexp.MustCompile(`_+`)
	hyphenRunRe     = regexp.MustCompile(`-+`)
	edgeRe          = regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
	disallowedRe    = regexp.MustCompile(`[^a-zA-Z0-9\s\-_.]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	extRe           = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

// SanitizeFilename reduces an uploaded filename to a safe base name and a
// lowercase extension (with leading dot, possibly empty).
func SanitizeFilename(filename string) (string, string) {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if !extRe.MatchString(ext) {
		ext = ""
	}

	base = underscoreRunRe.ReplaceAllString(base, "_")
	base = hyphenRunRe.ReplaceAllString(base, "-")
	base = edgeRe.ReplaceAllString(base, "")
	base = disallowedRe.ReplaceAllString(base, "")
	base = whitespaceRe.ReplaceAllString(base, "-")
	base = strings.TrimSpace(base)

	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}
	if strings.Trim(base, "_-.") == "" {
		base = "file"
	}
	return base, ext
}

// Namer builds collision-resistant object names.
type Namer struct {
	now    func() time.Time
	random func() int
}

func NewNamer() Namer {
	return Namer{
		now:    time.Now,
		random: func() int { return rand.IntN(1_000_000_000) },
	}
}

// Name returns <sanitized>-<unixmillis>-<random><ext>.
func (n Namer) Name(original string) string {
	now, random := n.now, n.random
	if now == nil {
		now = time.Now
	}
	if random == nil {
		random = func() int { return rand.IntN(1_000_000_000) }
	}
	base, ext := SanitizeFilename(original)
	return fmt.Sprintf("%s-%d-%d%s", base, now().UnixMilli(), random(), ext)
}
