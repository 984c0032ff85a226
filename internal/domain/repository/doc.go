// Package repository define las interfaces de repositorio de dominio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente (PostgreSQL, MySQL, MongoDB o memoria).
//
// Las implementaciones concretas viven en internal/store/adapters/.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────┐
//	│           auth.Service / nick.Validator             │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│                 UserRepository                      │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	     ┌──────────────┬───┴──────────┬──────────────┐
//	     ▼              ▼              ▼              ▼
//	┌──────────┐  ┌──────────┐  ┌──────────┐  ┌──────────┐
//	│    pg    │  │  mysql   │  │  mongo   │  │  memory  │
//	└──────────┘  └──────────┘  └──────────┘  └──────────┘
//
// Convenciones:
//   - La identidad de un usuario es siempre el par (ExternalID, Provider)
//   - Context siempre es el primer parámetro
//   - Errores de dominio están en errors.go
package repository
