package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "authentication_failed",
		Details: "Invalid email or password",
	}

	ErrUserAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "user_already_exists",
		Details: "Given email already registered.",
	}

	ErrRefreshTokenRejected = ErrorResponse{
		Status:  "error",
		Error:   "invalid_refresh_token",
		Details: "Refresh token is invalid or expired",
	}

	ErrCityNotFound = ErrorResponse{
		Status:  "error",
		Error:   "city_not_found",
		Details: "City not found",
	}

	ErrCityAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "city_already_exists",
		Details: "City with this name already exists",
	}

	ErrIDMismatch = ErrorResponse{
		Status:  "error",
		Error:   "id_mismatch",
		Details: "Route id does not match body id",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "Missing or invalid access token",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
