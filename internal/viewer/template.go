package viewer

const pageTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; display: flex; gap: 3rem; }
.calendar { min-width: 22rem; }
.calendar table { border-collapse: collapse; width: 100%; }
.calendar th, .calendar td { text-align: center; padding: 0.35rem 0.25rem; }
.calendar a { display: block; text-decoration: none; color: inherit; border-radius: 0.5rem; padding: 0.3rem; }
.calendar a:hover { background: #eee; }
.dim { opacity: 0.45; }
.today a { border: 2px solid #888; font-weight: 700; }
.selected a { background: #ddd; }
.nav { display: flex; justify-content: space-between; align-items: center; margin-bottom: 0.5rem; }
.nav a { text-decoration: none; padding: 0.2rem 0.6rem; }
.doc { max-width: 48rem; }
.notice { background: #eef5ff; padding: 0.75rem 1rem; border-radius: 0.5rem; }
.error { background: #ffecec; padding: 0.75rem 1rem; border-radius: 0.5rem; }
.hint { color: #777; font-size: 0.85rem; margin-top: 0.75rem; }
</style>
</head>
<body>
<div class="calendar">
  <h1>{{.Title}}</h1>
  <div class="nav">
    <a href="/?nav=prev">&#9664;</a>
    <h2>{{.MonthLabel}}</h2>
    <a href="/?nav=next">&#9654;</a>
  </div>
  <table>
    <tr>{{range .Weekdays}}<th>{{.}}</th>{{end}}</tr>
    {{range .Weeks}}
    <tr>
      {{range .}}
      <td class="{{if not .InMonth}}dim {{end}}{{if .IsToday}}today {{end}}{{if .Selected}}selected{{end}}">
        {{if .InMonth}}<a href="/?day={{.Date}}">{{.Day}}{{if .HasDoc}} &bull;{{end}}</a>{{else}}<span>{{.Day}}</span>{{end}}
      </td>
      {{end}}
    </tr>
    {{end}}
  </table>
  <p class="hint">&bull; が付いている日はMarkdownが存在します（推定）。</p>
</div>
<div class="doc">
  <h2>記事: {{.SelectedLabel}}</h2>
  {{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
  {{if .ErrorMsg}}<p class="error">{{.ErrorMsg}}</p>{{end}}
  {{if .Doc}}{{.Doc}}{{end}}
</div>
</body>
</html>
`
