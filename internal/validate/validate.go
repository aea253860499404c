package validate

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/schoolbooks/internal/tld"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Register 在 gin 的 validator 引擎上挂自定义校验 tag
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("password", passwordStrength)
	_ = v.RegisterValidation("phone", phoneFormat)
}

// passwordStrength 至少 8 位，且同时包含字母与数字
func passwordStrength(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func phoneFormat(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}

// EmailTLD 校验邮箱域名的顶级域是否在 IANA 清单里。
// 清单缓存缺失时放行，避免把注册挡在缓存故障上。
func EmailTLD(ctx context.Context, cache *redis.Client, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot < 0 || dot == len(domain)-1 {
		return false
	}
	return tld.Valid(ctx, cache, domain[dot+1:])
}

// Fields 把 validator 错误展开成 field -> message
func Fields(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "email":
			out[field] = "must be a valid email address"
		case "password":
			out[field] = "must be at least 8 characters with letters and digits"
		case "phone":
			out[field] = "must be a valid phone number"
		case "min", "max", "gte", "lte":
			out[field] = "is out of range"
		default:
			out[field] = "is invalid"
		}
	}
	return out
}
