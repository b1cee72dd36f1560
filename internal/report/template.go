package report

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
{{.Stylesheet}}
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            {{range .Plans}}
            <div class="subtitle">Plan {{inc .Index}}: {{.Steps}} steps, makespan {{formatTime .Makespan}}{{if .Now}}, now {{formatTime (deref .Now)}}{{end}}{{if .Helpful}}, {{.Helpful}} helpful actions{{end}}</div>
            {{end}}
        </header>
        <div id="plans"></div>
    </div>
    {{if .Interactive}}
    <script>
{{.Script}}
    </script>
    {{end}}
</body>
</html>
`
