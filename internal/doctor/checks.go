package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pocketpaw/pocketpaw-installer/internal/bootstrap"
	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
	"github.com/pocketpaw/pocketpaw-installer/internal/receipt"
	"github.com/pocketpaw/pocketpaw-installer/internal/update"
)

// Environment is the read-only view of the host that the checks probe.
// bootstrap.RealSystem satisfies it.
type Environment interface {
	FindPython(ctx context.Context) (string, error)
	PythonVersion(ctx context.Context, python string) (string, error)
	FindUV(ctx context.Context, python string) ([]string, error)
	VenvPython() string
	Exists(path string) bool
	InstalledVersion(ctx context.Context) (string, error)
}

// UpdateChecker compares an installed version with the latest release.
type UpdateChecker interface {
	Check(ctx context.Context, currentVersion string) (update.CheckResult, error)
}

// Options selects what Run inspects.
type Options struct {
	Env         Environment
	MinPython   string
	ReceiptPath string
	// Updates is nil when update checks are disabled in config.
	Updates UpdateChecker
}

// Run executes every check in order. Checks that depend on an earlier
// failure are skipped rather than reported twice.
func Run(ctx context.Context, opts Options) []Result {
	var results []Result

	pythonResults, python := CheckPython(ctx, opts.Env, opts.MinPython)
	results = append(results, pythonResults...)
	if python != "" {
		results = append(results, CheckUV(ctx, opts.Env, python))
	}

	venvResult, venvOK := CheckVenv(opts.Env)
	results = append(results, venvResult)

	installed := ""
	if venvOK {
		var packageResult Result
		packageResult, installed = CheckPackage(ctx, opts.Env)
		results = append(results, packageResult)
	}

	results = append(results, CheckReceipt(opts.ReceiptPath)...)

	if installed != "" {
		results = append(results, CheckUpdate(ctx, opts.Updates, installed))
	}
	return results
}

// CheckPython locates the interpreter and verifies its version. It returns the
// interpreter path when one was found.
func CheckPython(ctx context.Context, env Environment, minPython string) ([]Result, string) {
	python, err := env.FindPython(ctx)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePython,
			Message:        fmt.Sprintf(messages.DoctorPythonMissingFmt, err),
			Recommendation: fmt.Sprintf(messages.DoctorPythonMissingRecommendFmt, minPython),
		}}, ""
	}
	results := []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePython,
		Message:   fmt.Sprintf(messages.DoctorPythonFoundFmt, python),
	}}

	raw, err := env.PythonVersion(ctx, python)
	if err == nil {
		err = bootstrap.CheckPythonVersion(python, raw, minPython)
	}
	if err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePythonVersion,
			Message:        err.Error(),
			Recommendation: fmt.Sprintf(messages.DoctorPythonMissingRecommendFmt, minPython),
		})
		return results, python
	}
	results = append(results, Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePythonVersion,
		Message:   fmt.Sprintf(messages.DoctorPythonVersionOKFmt, strings.TrimSpace(raw), minPython),
	})
	return results, python
}

// CheckUV reports whether uv is already available. A missing uv is only a
// warning because install provisions it.
func CheckUV(ctx context.Context, env Environment, python string) Result {
	argv, err := env.FindUV(ctx, python)
	if err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameUV,
			Message:        messages.DoctorUVMissing,
			Recommendation: messages.DoctorUVMissingRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameUV,
		Message:   fmt.Sprintf(messages.DoctorUVFoundFmt, strings.Join(argv, " ")),
	}
}

// CheckVenv reports whether the virtual environment interpreter exists.
func CheckVenv(env Environment) (Result, bool) {
	venvPython := env.VenvPython()
	if !env.Exists(venvPython) {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameVenv,
			Message:        fmt.Sprintf(messages.DoctorVenvMissingFmt, venvPython),
			Recommendation: messages.DoctorRunInstallRecommend,
		}, false
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameVenv,
		Message:   fmt.Sprintf(messages.DoctorVenvFoundFmt, venvPython),
	}, true
}

// CheckPackage reads the installed package version from the venv.
func CheckPackage(ctx context.Context, env Environment) (Result, string) {
	installed, err := env.InstalledVersion(ctx)
	if err != nil || strings.TrimSpace(installed) == "" {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePackage,
			Message:        messages.DoctorPackageMissing,
			Recommendation: messages.DoctorRunInstallRecommend,
		}, ""
	}
	installed = strings.TrimSpace(installed)
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePackage,
		Message:   fmt.Sprintf(messages.DoctorPackageInstalledFmt, installed),
	}, installed
}

// CheckReceipt loads the install receipt and flags installs that fell back to
// fewer extras than requested.
func CheckReceipt(path string) []Result {
	r, found, err := receipt.Load(path)
	switch {
	case err != nil:
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameReceipt,
			Message:        err.Error(),
			Recommendation: fmt.Sprintf(messages.DoctorReceiptCorruptRecommendFmt, path),
		}}
	case !found:
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameReceipt,
			Message:        fmt.Sprintf(messages.DoctorReceiptMissingFmt, path),
			Recommendation: messages.DoctorRunInstallRecommend,
		}}
	}

	results := []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameReceipt,
		Message:   fmt.Sprintf(messages.DoctorReceiptFoundFmt, r.Version, extrasLabel(r.Extras), r.InstalledAt.UTC().Format("2006-01-02 15:04 MST")),
	}}
	if r.FallbackUsed {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameExtras,
			Message:        fmt.Sprintf(messages.DoctorExtrasReducedFmt, extrasLabel(r.Extras), extrasLabel(r.RequestedExtras)),
			Recommendation: fmt.Sprintf(messages.DoctorExtrasReducedRecommendFmt, strings.Join(r.RequestedExtras, ",")),
		})
	}
	return results
}

func extrasLabel(names []string) string {
	if len(names) == 0 {
		return "bare"
	}
	return strings.Join(names, ",")
}

// CheckUpdate compares installed with the latest release. Network problems
// are warnings; doctor never fails because the index is unreachable.
func CheckUpdate(ctx context.Context, checker UpdateChecker, installed string) Result {
	result := Result{CheckName: messages.DoctorCheckNameUpdate, Status: StatusWarn}
	if checker == nil {
		result.Message = messages.DoctorUpdateDisabled
		return result
	}
	if strings.TrimSpace(os.Getenv(config.EnvNoNetwork)) != "" {
		result.Message = fmt.Sprintf(messages.DoctorUpdateSkippedFmt, config.EnvNoNetwork)
		return result
	}

	check, err := checker.Check(ctx, installed)
	switch {
	case err != nil && update.IsRateLimitError(err):
		result.Message = messages.DoctorUpdateRateLimited
	case err != nil:
		result.Message = fmt.Sprintf(messages.DoctorUpdateFailedFmt, err)
		result.Recommendation = messages.DoctorUpdateFailedRecommend
	case check.Outdated:
		result.Message = fmt.Sprintf(messages.DoctorUpdateAvailableFmt, check.Latest, check.Current)
		result.Recommendation = messages.DoctorUpdateAvailableRecommend
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorUpToDateFmt, check.Current)
	}
	return result
}
