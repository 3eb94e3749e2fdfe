// Package main provides the entry point of BrokerDesk, the role and permission
// service of a multi-tenant insurance brokerage CRM. It serves a REST API to
// manage the roles of a tenant, their module/action permission matrix and the
// assignment of roles to users. Data is persisted with gorm on MySQL, PostgreSQL
// or SQLite, and every administrative change is announced to notifiers.
package main
