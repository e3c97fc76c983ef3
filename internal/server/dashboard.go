package server

// DashboardHTML is the embedded single-page control panel for macrokey.
// It connects via WebSocket, shows the recording status and the live event
// list, and answers save/load requests with a path prompt.
const DashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>macrokey</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, monospace;
    background: #0d1117; color: #c9d1d9; padding: 20px;
  }
  h1 { color: #58a6ff; margin-bottom: 4px; font-size: 1.5em; }
  .subtitle { color: #8b949e; margin-bottom: 20px; font-size: 0.9em; }
  .status-bar {
    display: flex; gap: 20px; margin-bottom: 20px; padding: 12px 16px;
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
  }
  .status-item { display: flex; flex-direction: column; }
  .status-label { font-size: 0.75em; color: #8b949e; text-transform: uppercase; }
  .status-value { font-size: 1.1em; font-weight: 600; }
  .status-value.connected { color: #3fb950; }
  .status-value.disconnected { color: #f85149; }
  .status-value.recording { color: #f85149; }
  .status-value.idle { color: #8b949e; }
  .status-value.playing { color: #3fb950; }
  .controls { display: flex; gap: 8px; margin-bottom: 20px; }
  .controls button {
    background: #21262d; color: #c9d1d9; border: 1px solid #30363d;
    padding: 6px 14px; border-radius: 4px; cursor: pointer; font-size: 0.9em;
  }
  .controls button:hover { background: #30363d; }
  .event-log {
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
    max-height: 500px; overflow-y: auto;
  }
  .event-header {
    padding: 12px 16px; border-bottom: 1px solid #30363d;
    font-weight: 600; color: #58a6ff; position: sticky; top: 0;
    background: #161b22;
  }
  .event-row {
    display: grid; grid-template-columns: 100px 160px 1fr;
    padding: 8px 16px; border-bottom: 1px solid #21262d;
    font-size: 0.85em; align-items: center;
    animation: fadeIn 0.3s ease;
  }
  .event-row:hover { background: #1c2128; }
  .empty-state { text-align: center; padding: 60px 20px; color: #8b949e; }
  .offset-cell { color: #8b949e; }
  .kind-cell { color: #d2a8ff; }
  .value-cell { color: #c9d1d9; }
  @keyframes fadeIn { from { opacity: 0; transform: translateY(-4px); } to { opacity: 1; transform: translateY(0); } }
</style>
</head>
<body>
<h1>macrokey</h1>
<p class="subtitle">F6 toggles recording, F7 toggles playback</p>

<div class="status-bar">
  <div class="status-item">
    <span class="status-label">Connection</span>
    <span class="status-value disconnected" id="conn-status">Disconnected</span>
  </div>
  <div class="status-item">
    <span class="status-label">Mode</span>
    <span class="status-value idle" id="mode">idle</span>
  </div>
  <div class="status-item">
    <span class="status-label">Events</span>
    <span class="status-value" id="count">0</span>
  </div>
</div>

<div class="controls">
  <button onclick="post('/api/record/toggle')">Record</button>
  <button onclick="post('/api/play/toggle')">Play</button>
  <button onclick="saveMacro()">Save</button>
  <button onclick="loadMacro()">Load</button>
</div>

<div class="event-log">
  <div class="event-header">Recorded Events</div>
  <div id="events"><div class="empty-state">Nothing recorded yet.</div></div>
</div>

<script>
const eventsDiv = document.getElementById('events');
let count = 0;

function setMode(mode) {
  const el = document.getElementById('mode');
  el.textContent = mode;
  el.className = 'status-value ' + mode;
}

function clearEvents() {
  count = 0;
  document.getElementById('count').textContent = 0;
  eventsDiv.innerHTML = '';
}

function addEvent(ev) {
  const empty = eventsDiv.querySelector('.empty-state');
  if (empty) empty.remove();
  count++;
  document.getElementById('count').textContent = count;
  const row = document.createElement('div');
  row.className = 'event-row';
  row.innerHTML =
    '<span class="offset-cell">' + ev.offset.toFixed(3) + 's</span>' +
    '<span class="kind-cell">' + escHtml(ev.kind) + '</span>' +
    '<span class="value-cell">' + escHtml(ev.value) + '</span>';
  eventsDiv.appendChild(row);
}

async function refresh() {
  const res = await fetch('/api/events');
  const body = await res.json();
  setMode(body.mode);
  clearEvents();
  (body.events || []).forEach(addEvent);
}

async function post(path, body) {
  const res = await fetch(path, {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: body ? JSON.stringify(body) : undefined,
  });
  if (!res.ok) {
    const err = await res.json().catch(() => ({error: res.statusText}));
    alert(err.error);
  }
  refresh();
}

function saveMacro() {
  const path = prompt('Save macro to file:', 'macro.txt');
  if (path) post('/api/save', {path: path});
}

function loadMacro() {
  const path = prompt('Load macro from file:', 'macro.txt');
  if (path) post('/api/load', {path: path});
}

function handle(msg) {
  switch (msg.type) {
  case 'recording_status':
    if (msg.recording) clearEvents();
    setMode(msg.recording ? 'recording' : 'idle');
    break;
  case 'live_event':
    addEvent(msg.event);
    break;
  case 'playback_finished':
    refresh();
    break;
  case 'file_save_requested':
    saveMacro();
    break;
  case 'file_load_requested':
    loadMacro();
    break;
  }
}

function connect() {
  const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  const ws = new WebSocket(proto + '//' + location.host + '/ws');
  ws.onopen = () => {
    document.getElementById('conn-status').textContent = 'Connected';
    document.getElementById('conn-status').className = 'status-value connected';
    refresh();
  };
  ws.onclose = () => {
    document.getElementById('conn-status').textContent = 'Disconnected';
    document.getElementById('conn-status').className = 'status-value disconnected';
    setTimeout(connect, 2000);
  };
  ws.onmessage = (e) => handle(JSON.parse(e.data));
}

function escHtml(s) {
  const d = document.createElement('div');
  d.textContent = s;
  return d.innerHTML;
}

connect();
</script>
</body>
</html>`
