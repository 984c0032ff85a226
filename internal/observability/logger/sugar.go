package logger

import "go.uber.org/zap"

// S retorna el SugaredLogger del singleton.
// Lo usa el CLI para mensajes printf-style.
func S() *zap.SugaredLogger {
	return L().Sugar()
}
