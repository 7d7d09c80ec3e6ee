package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingRequest           = errors.New("an overlapping leave request already exists")
	ErrInvalidDateRange             = errors.New("start_date must not be after end_date")
	ErrNotDirectManager             = errors.New("only the direct manager or admin RH can process this request")
	ErrUnauthorized                 = errors.New("unauthorized to access this leave request")
	ErrNoEmployeeProfile            = errors.New("no employee profile linked to this account")
)
