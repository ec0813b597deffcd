package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionExpired     ErrCode = "SESSION_EXPIRED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrRouteAccessDenied ErrCode = "ROUTE_ACCESS_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrPolicyMisconfigured ErrCode = "POLICY_MISCONFIGURED"
	ErrInternal            ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email hoặc mật khẩu không đúng."
	case ErrSessionExpired:
		return "Phiên đăng nhập đã kết thúc. Vui lòng đăng nhập lại."
	case ErrTokenRequired:
		return "Cần đăng nhập để tiếp tục."
	case ErrTokenInvalid:
		return "Mã phiên đăng nhập không hợp lệ."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrPermissionDenied:
		return "Bạn không có quyền thực hiện thao tác này."
	case ErrRouteAccessDenied:
		return "Không có quyền truy cập vào trang này."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy tài nguyên."
	case ErrConflict:
		return "Yêu cầu đã được xử lý trước đó."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrPolicyMisconfigured:
		return "Cấu hình phân quyền không hợp lệ."
	case ErrInternal:
		return "Lỗi máy chủ nội bộ."
	default:
		return "Đã xảy ra lỗi không mong muốn."
	}
}
