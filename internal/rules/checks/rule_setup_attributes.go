package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pkgmedic/internal/data"
	"pkgmedic/internal/data/models"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

// attrOutcome is what an attribute predicate decides: the severity plus
// the finding and remediation text. A pass uses the lowest severity.
type attrOutcome struct {
	severity    rules.Severity
	description string
	solution    string
}

func attrPass(description string) attrOutcome {
	return attrOutcome{severity: rules.SeverityDebug, description: description}
}

// SetupAttributeRule checks one setup.py attribute. All instances share
// the evaluation shell; the per-attribute behavior lives in check.
type SetupAttributeRule struct {
	attr        string
	title       string
	description string
	check       func(pkg *pypkg.Package, meta *models.SetupMetadata) (attrOutcome, error)
}

func (r *SetupAttributeRule) ID() string {
	return "setup-" + strings.ReplaceAll(r.attr, "_", "-")
}

func (r *SetupAttributeRule) Title() string {
	return r.title
}

func (r *SetupAttributeRule) Description() string {
	return r.description
}

func (r *SetupAttributeRule) Group() rules.Group {
	return rules.GroupSetup
}

func (r *SetupAttributeRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return []data.EvidenceKey{data.EvSetupMetadata}, nil
}

func (r *SetupAttributeRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (rules.Issue, error) {
	meta, err := evidence[*models.SetupMetadata](ev, data.EvSetupMetadata)
	if err != nil {
		return rules.Issue{}, err
	}

	out, err := r.check(pkg, meta)
	if err != nil {
		return rules.Issue{}, err
	}
	return rules.NewIssue(pkg, r.ID(), out.severity, r.attr, out.description, out.solution), nil
}

func missingAttr(attr string, sev rules.Severity, solution string) attrOutcome {
	return attrOutcome{
		severity:    sev,
		description: fmt.Sprintf("setup.py does not implement the attribute '%s'", attr),
		solution:    solution,
	}
}

// scalarAttrCheck builds a predicate for a plain string attribute:
// missing uses the given severity, an invalid value is detected by bad
// and reported at the same severity.
func scalarAttrCheck(attr string, sev rules.Severity, missingSolution string, bad func(value string) bool, badDescription, badSolution string) func(*pypkg.Package, *models.SetupMetadata) (attrOutcome, error) {
	return func(_ *pypkg.Package, meta *models.SetupMetadata) (attrOutcome, error) {
		value, ok := meta.Attr(attr)
		if !ok {
			return missingAttr(attr, sev, missingSolution), nil
		}
		if bad != nil && bad(value) {
			return attrOutcome{severity: sev, description: badDescription, solution: badSolution}, nil
		}
		return attrPass(fmt.Sprintf("'%s' is valid", attr)), nil
	}
}

var packageNamePattern = regexp.MustCompile(`^[a-z_]+$`)

func hasPlaceholder(value string) bool {
	return strings.HasPrefix(value, "<<") || strings.HasSuffix(value, ">>")
}

func hasTemplateText(value string) bool {
	return strings.HasPrefix(value, "Resilient Circuits Components")
}

func checkInstallRequires(_ *pypkg.Package, meta *models.SetupMetadata) (attrOutcome, error) {
	requires, ok := meta.List("install_requires")
	if !ok {
		return missingAttr("install_requires", rules.SeverityCritical,
			"Add install_requires with the app's dependencies, including '"+pypkg.RuntimeDist+"'"), nil
	}
	req, found := pypkg.DependencyNamed(requires, pypkg.RuntimeDist)
	if !found {
		return attrOutcome{
			severity:    rules.SeverityCritical,
			description: fmt.Sprintf("'install_requires' does not include '%s'", pypkg.RuntimeDist),
			solution:    fmt.Sprintf("Add '%s>=%s' to install_requires", pypkg.RuntimeDist, pypkg.MinRuntimeVersion),
		}, nil
	}
	return attrPass(fmt.Sprintf("'%s' is included in install_requires", req)), nil
}

func checkPythonRequires(_ *pypkg.Package, meta *models.SetupMetadata) (attrOutcome, error) {
	spec, ok := meta.Attr("python_requires")
	if !ok {
		return attrOutcome{
			severity:    rules.SeverityWarn,
			description: "setup.py does not implement the attribute 'python_requires'",
			solution:    fmt.Sprintf("It is recommended to declare python_requires='>=%s'", pypkg.MinSupportedPython),
		}, nil
	}

	required, err := pypkg.RequiredPythonVersion(spec)
	if err != nil {
		return attrOutcome{}, err
	}

	minimum, err := pypkg.RequiredPythonVersion(">=" + pypkg.MinSupportedPython)
	if err != nil {
		return attrOutcome{}, err
	}
	if required.LessThan(minimum) {
		return attrOutcome{
			severity:    rules.SeverityWarn,
			description: fmt.Sprintf("'python_requires' version %s is lower than the minimum supported version %s", required, pypkg.MinSupportedPython),
			solution:    fmt.Sprintf("Set python_requires='>=%s'", pypkg.MinSupportedPython),
		}, nil
	}
	return attrPass(fmt.Sprintf("Python %s or later is required", required)), nil
}

func checkEntryPoints(_ *pypkg.Package, meta *models.SetupMetadata) (attrOutcome, error) {
	raw, ok := meta.Attr("entry_points")
	if !ok {
		return missingAttr("entry_points", rules.SeverityCritical,
			"Add entry_points for: "+strings.Join(pypkg.SupportedEntryPoints, ", ")), nil
	}

	var missing []string
	for _, ep := range pypkg.SupportedEntryPoints {
		if !strings.Contains(raw, ep) {
			missing = append(missing, ep)
		}
	}
	if len(missing) > 0 {
		return attrOutcome{
			severity:    rules.SeverityCritical,
			description: "'entry_points' is missing: " + strings.Join(missing, ", "),
			solution:    "Declare every supported entry point in setup.py",
		}, nil
	}
	return attrPass("all supported entry points are declared"), nil
}

func init() {
	rules.Register(&SetupAttributeRule{
		attr:        "name",
		title:       "Package Name Is Valid",
		description: "Verifies that setup.py declares a name containing only lowercase letters and underscores.",
		check: scalarAttrCheck("name", rules.SeverityCritical,
			"Add a name attribute to setup.py",
			func(v string) bool { return !packageNamePattern.MatchString(v) },
			"'name' contains characters that are not lowercase letters or underscores",
			"Rename the package using only lowercase letters and underscores"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "display_name",
		title:       "Display Name Is Set",
		description: "Verifies that setup.py declares a display_name and that it is not the generated placeholder.",
		check: scalarAttrCheck("display_name", rules.SeverityWarn,
			"Add a display_name attribute with the app's marketplace name",
			hasPlaceholder,
			"'display_name' is still the generated placeholder",
			"Replace the '<<...>>' placeholder with the app's display name"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "license",
		title:       "License Is Set",
		description: "Verifies that setup.py declares a license and that it is not the generated placeholder.",
		check: scalarAttrCheck("license", rules.SeverityCritical,
			"Add a license attribute (e.g. 'MIT')",
			hasPlaceholder,
			"'license' is still the generated placeholder",
			"Replace the '<<...>>' placeholder with the app's license"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "author",
		title:       "Author Is Set",
		description: "Verifies that setup.py declares an author and that it is not the generated placeholder.",
		check: scalarAttrCheck("author", rules.SeverityCritical,
			"Add an author attribute",
			hasPlaceholder,
			"'author' is still the generated placeholder",
			"Replace the '<<...>>' placeholder with the author's name"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "author_email",
		title:       "Author Email Is Set",
		description: "Verifies that setup.py declares an author_email and that it is not the example address.",
		check: scalarAttrCheck("author_email", rules.SeverityCritical,
			"Add an author_email attribute",
			func(v string) bool { return strings.Contains(v, "@example.com") },
			"'author_email' still points at example.com",
			"Replace the example address with a real contact address"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "description",
		title:       "Description Is Written",
		description: "Verifies that setup.py declares a description and that it is not the generated template text.",
		check: scalarAttrCheck("description", rules.SeverityWarn,
			"Add a description attribute summarizing the app",
			hasTemplateText,
			"'description' is still the generated template text",
			"Replace the generated text with a summary of the app"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "long_description",
		title:       "Long Description Is Written",
		description: "Verifies that setup.py declares a long_description and that it is not the generated template text.",
		check: scalarAttrCheck("long_description", rules.SeverityWarn,
			"Add a long_description attribute describing the app",
			hasTemplateText,
			"'long_description' is still the generated template text",
			"Replace the generated text with a description of the app"),
	})
	rules.Register(&SetupAttributeRule{
		attr:        "install_requires",
		title:       "Runtime Dependency Is Declared",
		description: "Verifies that install_requires includes the integration runtime library.",
		check:       checkInstallRequires,
	})
	rules.Register(&SetupAttributeRule{
		attr:        "python_requires",
		title:       "Supported Python Version Is Required",
		description: "Verifies that python_requires demands at least the minimum supported Python version.",
		check:       checkPythonRequires,
	})
	rules.Register(&SetupAttributeRule{
		attr:        "entry_points",
		title:       "Supported Entry Points Are Declared",
		description: "Verifies that setup.py declares every supported integration entry point.",
		check:       checkEntryPoints,
	})
}
