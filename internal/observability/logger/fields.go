package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field es un alias de zap.Field para no importar zap en cada paquete.
type Field = zap.Field

// =================================================================================
// HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// ClientIP crea un campo para la IP del cliente.
func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

// =================================================================================
// NEGOCIO
// =================================================================================

// Provider crea un campo para el proveedor de identidad (kakao, google, apple).
func Provider(v string) zap.Field { return zap.String("provider", v) }

// ExternalID crea un campo para el id del usuario en el proveedor.
func ExternalID(v string) zap.Field { return zap.String("external_id", v) }

// Nick crea un campo para el nickname.
func Nick(v string) zap.Field { return zap.String("nick", v) }

// UserID crea un campo para el ID local del usuario.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// Email crea un campo con el email enmascarado.
func Email(v string) zap.Field { return zap.String("email", MaskEmail(v)) }

// =================================================================================
// SISTEMA
// =================================================================================

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op crea un campo para la operación actual.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer crea un campo para la capa (controller, service, store).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Driver crea un campo para el driver de storage o cache.
func Driver(v string) zap.Field { return zap.String("driver", v) }

func Err(err error) zap.Field { return zap.Error(err) }

func String(key, v string) zap.Field { return zap.String(key, v) }

func Int(key string, v int) zap.Field { return zap.Int(key, v) }

func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }

func Any(key string, v any) zap.Field { return zap.Any(key, v) }
