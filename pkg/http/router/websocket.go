package router

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// analyzeStream upgrades to a websocket and serves analyze requests on it until the client disconnects. Each
// request streams one progress message per analyzed source before the final result.
func (api *API) analyzeStream(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}
	// hijacked connections keep the server deadlines
	_ = conn.SetDeadline(time.Time{})

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)
	defer api.hub.Remove(user)

	for {
		if err := user.StreamAnalysis(r.Context()); err != nil {
			if isClosed(err) {
				api.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))
			} else {
				api.log.Error("error streaming analysis", zap.Error(err))
			}
			return
		}
	}
}

func isClosed(err error) bool {
	var closed wsutil.ClosedError
	return errors.As(err, &closed) || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
