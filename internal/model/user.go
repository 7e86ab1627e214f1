package model

// UserRole 由身份服务签发在 JWT 中，本服务只做信任读取
type UserRole string

const (
	Developer  UserRole = "developer"
	Maintainer UserRole = "maintainer"
	Admin      UserRole = "admin"
)
