package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Render renders the named template with data and returns subject, text and
// HTML bodies. Unknown template names are an error so the worker can nack
// malformed jobs instead of sending empty mail.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.html.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return t.subject(data), t.text(data), buf.String(), nil
}

type tpl struct {
	subject func(map[string]any) string
	text    func(map[string]any) string
	html    *template.Template
}

func str(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

var registry = map[string]tpl{
	"welcome": {
		subject: func(d map[string]any) string {
			return "Welcome to DevConnect, " + str(d, "Name")
		},
		text: func(d map[string]any) string {
			return "Hi " + str(d, "Name") + ",\n\n" +
				"Your DevConnect account is ready. Create your developer profile to get started.\n"
		},
		html: template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to DevConnect, {{.Name}}!</h2>
    <p>Your account is ready. Create your developer profile to share your
    skills, experience and links with the community.</p>
    <p style="color:#888; font-size:12px;">You are receiving this because an
    account was registered with {{.Email}}.</p>
  </body>
</html>`)),
	},
}
