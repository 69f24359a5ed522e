package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Wrap adapts an error-returning handler into an http.HandlerFunc. Each
// request gets its own LogData, logged once the handler returns.
func Wrap(
	name string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		logData.AddData("handler", name)
		logData.AddData("path", req.URL.Path)

		endTimer := logData.AddTiming("duration_ms")
		err := handler(w, req, logData)
		endTimer()

		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", name)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", name)
	}
}
