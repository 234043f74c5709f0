package domain

import "DawnEmpire/modules/kit/errx"

const (
	CodeAccountNotFound errx.Code = "ACCOUNT_NOT_FOUND"
)

var (
	ErrAccountNotFound = errx.NewBiz(CodeAccountNotFound, "账号不存在")

	ErrSystemUnavailable = errx.ErrUnavailable
)
