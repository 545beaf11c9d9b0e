package mailtemplates

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	root "github.com/helpinghands/ngo-backend"
	"github.com/helpinghands/ngo-backend/notifications"
)

// TemplatesDir is the directory of the embedded assets that contains the
// HTML mail templates.
const TemplatesDir = "assets/mail"

// TemplateKey identifies an email template. It is the filename of the
// template without the extension.
type TemplateKey string

// TemplateFile describes a loaded template.
type TemplateFile struct {
	HTMLFile string
	html     *htmltemplate.Template
}

var (
	templatesMtx sync.RWMutex
	available    map[TemplateKey]TemplateFile
)

// MailTemplate represents an email template. It includes the template key
// and the notification placeholder to be sent, whose subject and plain body
// are text templates executed with the same data as the HTML file.
type MailTemplate struct {
	Key         TemplateKey
	Placeholder notifications.Notification
}

// Load parses every HTML template found in the embedded assets. It can be
// called more than once; the last call wins.
func Load() error {
	return LoadFS(root.Assets, TemplatesDir)
}

// LoadFS parses every HTML template found under dir in fsys.
func LoadFS(fsys fs.FS, dir string) error {
	files := make(map[TemplateKey]TemplateFile)
	if err := fs.WalkDir(fsys, dir, func(fPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		tmpl, err := htmltemplate.ParseFS(fsys, fPath)
		if err != nil {
			return fmt.Errorf("could not parse template %s: %w", fPath, err)
		}
		key := TemplateKey(strings.TrimSuffix(path.Base(fPath), ".html"))
		files[key] = TemplateFile{HTMLFile: fPath, html: tmpl}
		return nil
	}); err != nil {
		return err
	}
	templatesMtx.Lock()
	defer templatesMtx.Unlock()
	available = files
	return nil
}

// Available returns a copy of the loaded templates.
func Available() map[TemplateKey]TemplateFile {
	templatesMtx.RLock()
	defer templatesMtx.RUnlock()
	res := make(map[TemplateKey]TemplateFile, len(available))
	for k, v := range available {
		res[k] = v
	}
	return res
}

// ExecTemplate fills the HTML template, the subject and the plain body with
// the data provided. It fails if the template has not been loaded.
func (mt MailTemplate) ExecTemplate(data any) (*notifications.Notification, error) {
	templatesMtx.RLock()
	file, ok := available[mt.Key]
	templatesMtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %s not found", mt.Key)
	}
	buf := new(bytes.Buffer)
	if err := file.html.Execute(buf, data); err != nil {
		return nil, err
	}
	subject, err := execText(mt.Placeholder.Subject, data)
	if err != nil {
		return nil, err
	}
	plain, err := execText(mt.Placeholder.PlainBody, data)
	if err != nil {
		return nil, err
	}
	return &notifications.Notification{
		Subject:   subject,
		Body:      buf.String(),
		PlainBody: plain,
	}, nil
}

func execText(src string, data any) (string, error) {
	if src == "" {
		return "", nil
	}
	tmpl, err := texttemplate.New("text").Parse(src)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
