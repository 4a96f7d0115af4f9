package reports

// reportTemplate is the page the summary and chart are rendered into
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{safeCSS .CSS}}</style>
</head>
<body>
<main>
<section class="summary">{{safeHTML .Content}}</section>
<section class="chart">{{safeHTML .Chart}}</section>
<footer>Generated {{.Generated}} by insightforge {{.Version}}</footer>
</main>
</body>
</html>
`

const reportCSS = `body{font-family:-apple-system,Segoe UI,Helvetica,Arial,sans-serif;margin:0;background:#f8f9fa;color:#343a40}
main{max-width:1000px;margin:0 auto;padding:24px}
table{border-collapse:collapse;margin:12px 0}
th,td{border:1px solid #dee2e6;padding:4px 10px;text-align:right}
th:first-child,td:first-child{text-align:left}
.chart-container{background:#fff;border-radius:6px;padding:12px;box-shadow:0 1px 3px rgba(0,0,0,.1)}
footer{margin-top:24px;font-size:12px;color:#6c757d}`
