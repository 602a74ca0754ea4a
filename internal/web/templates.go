package web

const pageHTML = `<!doctype html>
<html lang="es">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="/static/app.css" />
  </head>
  <body>
    <main class="container">
      <header class="header">
        <h1 class="title">{{.Title}}</h1>
        {{if .Nav}}
          <nav class="nav">
            {{range .Nav}}<a href="{{.Href}}"{{if .Current}} class="current"{{end}}>{{.Title}}</a>{{end}}
          </nav>
        {{end}}
      </header>

      <div id="toast-container">
        {{if .Notice}}<div class="toast success show" role="status">{{.Notice}}</div>{{end}}
      </div>

      <section class="panel">
        <form id="taskForm" method="post" action="{{.Action}}" novalidate>
          {{range .Fields}}
            {{$f := .}}
            <div class="field">
              {{if eq .Kind "select"}}
                <label for="{{.ID}}">{{.Label}}</label>
                <select id="{{.ID}}" name="{{.ID}}"{{if .Error}} class="input-error"{{end}}>
                  {{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Text}}</option>{{end}}
                </select>
              {{else if eq .Kind "checkbox"}}
                <label for="{{.ID}}">
                  <input type="checkbox" id="{{.ID}}" name="{{.ID}}" value="on"{{if .Checked}} checked{{end}}{{if .Error}} class="input-error"{{end}} />
                  {{.Label}}
                </label>
              {{else if eq .Kind "radio"}}
                <fieldset id="{{.ID}}"{{if .Error}} class="input-error"{{end}}>
                  <legend>{{.Label}}</legend>
                  {{range .Options}}
                    <label><input type="radio" name="{{$f.ID}}" value="{{.Value}}"{{if .Selected}} checked{{end}} /> {{.Text}}</label>
                  {{end}}
                </fieldset>
              {{else}}
                <label for="{{.ID}}">{{.Label}}</label>
                <input type="{{.InputType}}" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}"{{if .Error}} class="input-error"{{end}} />
              {{end}}
              {{if .Error}}<span class="error-message">{{.Error}}</span>{{end}}
            </div>
          {{end}}
          <button type="submit">Añadir</button>
        </form>
      </section>

      {{if .ShowTable}}
        <section class="panel">
          <table>
            <thead>
              <tr><th>{{index .Headers 0}}</th><th>{{index .Headers 1}}</th><th>{{index .Headers 2}}</th><th></th></tr>
            </thead>
            <tbody id="taskTable">
              {{range .Rows}}
                <tr>
                  <td>{{.Name1}}</td>
                  <td>{{.Name2}}</td>
                  <td>{{.Date}}</td>
                  <td>
                    <form method="post" action="{{.DeleteAction}}">
                      <button class="delete-task" data-index="{{.Index}}">x</button>
                    </form>
                  </td>
                </tr>
              {{end}}
            </tbody>
          </table>
        </section>
      {{end}}
    </main>
  </body>
</html>
`

const appCSS = `
:root{
  --bg: #f6f7fb;
  --panel: #ffffff;
  --text: #1d2330;
  --muted: #6b7385;
  --line: #e1e4ec;
  --error: #c62828;
  --ok: #2e7d32;
  --sans: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, "Apple Color Emoji", "Segoe UI Emoji";
}
*{box-sizing:border-box}
body{margin:0; font-family:var(--sans); background:var(--bg); color:var(--text)}
.container{max-width:760px; margin:0 auto; padding:32px 20px 60px}
.header{margin-bottom:18px}
.title{margin:0; font-size:26px}
.nav{display:flex; gap:12px; margin-top:8px; font-size:14px}
.nav a{color:var(--muted); text-decoration:none}
.nav a.current{color:var(--text); font-weight:600}
.panel{background:var(--panel); border:1px solid var(--line); border-radius:10px; padding:16px; margin-bottom:16px}
.field{display:flex; flex-direction:column; gap:4px; margin-bottom:12px}
fieldset{border:1px solid var(--line); border-radius:6px}
input,select{padding:6px 8px; border:1px solid var(--line); border-radius:6px; font:inherit}
.input-error{border-color:var(--error)}
.error-message{color:var(--error); font-size:13px}
table{width:100%; border-collapse:collapse}
th,td{text-align:left; padding:8px; border-bottom:1px solid var(--line)}
.delete-task{border:none; background:none; color:var(--error); cursor:pointer}
#toast-container{position:fixed; top:16px; right:16px}
.toast{padding:10px 14px; border-radius:6px; color:#fff; opacity:0; transition:opacity .3s}
.toast.show{opacity:1}
.toast.success{background:var(--ok)}
`
