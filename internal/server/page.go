package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Search → Summarize → Translate</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.error { color: #b00020; }
.warning { color: #8a6d00; }
.info { color: #555; }
pre { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Search → Summarize → Translate</h1>
<form method="post" action="/run">
  <p><label>Enter your question<br><input type="text" name="question" size="60" value="{{.Question}}"></label></p>
  <p><label>Translate to language<br>
    <select name="language">
    {{- range .Languages}}
      <option value="{{.Code}}"{{if eq .Code $.Language}} selected{{end}}>{{.Name}} ({{.Code}})</option>
    {{- end}}
    </select>
  </label></p>
  <p><button type="submit">Run</button></p>
</form>
{{with .Report}}
  {{range .Messages}}<p class="{{.Level}}">{{.Text}}</p>{{end}}
  {{if .Summary}}<h2>English Summary</h2><pre>{{.Summary}}</pre>{{end}}
  {{if .Translation}}<h2>Translated Summary</h2><pre>{{.Translation}}</pre>{{end}}
{{end}}
</body>
</html>
`
