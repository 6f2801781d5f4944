package web

import "html/template"

type dashboardData struct {
	BPM     string
	Samples int
	Values  []float64
	Live    bool
}

var dashboard = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PPG Monitor</title>
<style>
body { font-family: sans-serif; margin: 2em; }
#bpm { font-size: 4em; }
#values { font-family: monospace; font-size: 0.8em; word-break: break-all; }
</style>
</head>
<body>
<h1>Heart rate</h1>
<div><span id="bpm">{{.BPM}}</span> BPM</div>
<p><span id="samples">{{.Samples}}</span> samples buffered</p>
<h2>Recent IR values</h2>
<div id="values">{{range $i, $v := .Values}}{{if $i}}, {{end}}{{$v}}{{end}}</div>
{{if .Live}}
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/bpm");
ws.onmessage = (ev) => {
  const u = JSON.parse(ev.data);
  document.getElementById("bpm").textContent = u.bpm === null ? "N/A" : u.bpm.toFixed(1);
  document.getElementById("samples").textContent = u.samples;
};
</script>
{{end}}
</body>
</html>
`))
