package server

// indexPage is the fallback bundle served when no static directory is
// configured: a canvas renderer over the websocket snapshot stream.
const indexPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>barswing</title>
<style>
  body { margin: 0; background: #10141c; color: #dde; font-family: monospace; }
  #hud { position: fixed; top: 12px; left: 12px; font-size: 18px; }
  canvas { display: block; }
</style>
</head>
<body>
<div id="hud">score: 0</div>
<canvas id="c"></canvas>
<script>
var canvas = document.getElementById("c");
var hud = document.getElementById("hud");
var ctx = canvas.getContext("2d");
var arena = { bars: [], mats: [] };
var state = null;
var scale = 60;

function resize() {
  canvas.width = window.innerWidth;
  canvas.height = window.innerHeight;
}
window.addEventListener("resize", resize);
resize();

function sx(x) { return canvas.width / 2 + x * scale; }
function sy(y) { return canvas.height - 80 - y * scale; }

function draw() {
  ctx.fillStyle = "#10141c";
  ctx.fillRect(0, 0, canvas.width, canvas.height);

  ctx.fillStyle = "#355";
  arena.mats.forEach(function (m) {
    ctx.fillRect(sx(m.pos.x - 1.0), sy(m.pos.y + 0.15), 2.0 * scale, 0.3 * scale);
  });

  ctx.fillStyle = "#aaa";
  arena.bars.forEach(function (b) {
    ctx.beginPath();
    ctx.arc(sx(b.pos.x), sy(b.pos.y), 5, 0, 2 * Math.PI);
    ctx.fill();
  });

  if (!state) { requestAnimationFrame(draw); return; }

  if (state.particles) {
    ctx.fillStyle = "#f80";
    state.particles.forEach(function (p) {
      ctx.fillRect(sx(p.x) - 2, sy(p.y) - 2, 4, 4);
    });
  }

  ctx.save();
  ctx.translate(sx(state.pos.x), sy(state.pos.y));
  ctx.rotate(-state.rot);
  ctx.fillStyle = "#6cf";
  ctx.fillRect(-6, -18, 12, 36);
  ctx.restore();

  hud.textContent = "score: " + state.score;
  requestAnimationFrame(draw);
}
draw();

var proto = location.protocol === "https:" ? "wss://" : "ws://";
var ws = new WebSocket(proto + location.host + "/ws");
ws.onmessage = function (ev) {
  var msg = JSON.parse(ev.data);
  if (msg.type === "hello") { arena = msg; }
  if (msg.type === "state") { state = msg; }
};

function keyName(ev) {
  if (ev.code === "ArrowLeft") return "left";
  if (ev.code === "ArrowRight") return "right";
  if (ev.code === "Space") return "release";
  return null;
}
window.addEventListener("keydown", function (ev) {
  var k = keyName(ev);
  if (k && !ev.repeat) ws.send(JSON.stringify({ type: "key", key: k, down: true }));
});
window.addEventListener("keyup", function (ev) {
  var k = keyName(ev);
  if (k) ws.send(JSON.stringify({ type: "key", key: k, down: false }));
});
</script>
</body>
</html>
`
