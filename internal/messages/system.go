package messages

// Logging and receipt messages.
const (
	// LogCreateDirFmt formats log directory creation errors.
	LogCreateDirFmt = "create log directory for %s: %w"
	LogOpenFileFmt  = "open log file %s: %w"

	// ReceiptRequiresSuccess indicates a receipt was requested for a failed install.
	ReceiptRequiresSuccess  = "receipt requires a successful install"
	ReceiptEncodeFmt        = "encode receipt: %w"
	ReceiptReadFmt          = "read receipt %s: %w"
	ReceiptDecodeFmt        = "decode receipt %s: %w"
	ReceiptWriteFmt         = "write receipt %s: %w"
	ReceiptDiffTruncatedFmt = "... (diff truncated to %d lines; rerun with --diff-lines <n> to see more)"
)
