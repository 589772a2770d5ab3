package generator

import (
	"context"
	"fmt"

	"github.com/example/smartqa/internal/ports/secondary"
)

// catalog is the fixed set of e-commerce scenarios served in offline mode.
var catalog = []secondary.ScenarioDraft{
	{
		Title:       "User Registration",
		Description: "Verifies a new user can sign up successfully",
		Steps: []string{
			"Click 'Sign Up' on the home page",
			"Fill in the required fields (name, email, password)",
			"Tick the terms and conditions checkbox",
			"Click 'Create Account'",
			"Check that the verification email arrives",
			"Verify the registration success message is shown",
		},
		Priority: "high",
	},
	{
		Title:       "Login",
		Description: "Verifies a registered user can sign in",
		Steps: []string{
			"Go to the login page",
			"Enter a valid email and password",
			"Click 'Sign In'",
			"Verify the user lands on the dashboard",
			"Check that the user name is shown in the header",
		},
		Priority: "high",
	},
	{
		Title:       "Product Search",
		Description: "Verifies users can search for products and see results",
		Steps: []string{
			"Type a product name into the search box on the home page",
			"Press Enter or click the search button",
			"Wait for the results to load",
			"Verify matching products are listed",
			"Check that the result count is shown",
		},
		Priority: "medium",
	},
	{
		Title:       "Add Product to Cart",
		Description: "Verifies products can be added to the cart and the cart shows them",
		Steps: []string{
			"Open a product detail page",
			"Choose a quantity",
			"Click 'Add to Cart'",
			"Verify the cart icon counter increases",
			"Go to the cart page",
			"Check that the product appears in the cart",
		},
		Priority: "high",
	},
	{
		Title:       "Password Reset",
		Description: "Verifies a user can reset a forgotten password",
		Steps: []string{
			"Click 'Forgot Password' on the login page",
			"Enter the registered email address",
			"Click 'Send Reset Link'",
			"Check that the email arrives",
			"Click the link in the email",
			"Create and save a new password",
			"Verify the user can sign in with the new password",
		},
		Priority: "medium",
	},
	{
		Title:       "Checkout Payment",
		Description: "Verifies a user can buy the products in the cart",
		Steps: []string{
			"Add at least one product to the cart",
			"Click 'Proceed to Checkout'",
			"Fill in the delivery address",
			"Choose a payment method (credit card)",
			"Enter the card details",
			"Click 'Place Order'",
			"Verify the order confirmation page is shown",
		},
		Priority: "critical",
	},
	{
		Title:       "Product Filtering",
		Description: "Verifies category and price filters work",
		Steps: []string{
			"Go to the product list page",
			"Choose a category (e.g. Electronics)",
			"Verify only products from that category are shown",
			"Set a price range (e.g. 100-500)",
			"Check that the filters apply and the results change",
		},
		Priority: "medium",
	},
	{
		Title:       "Profile Update",
		Description: "Verifies a user can update profile details",
		Steps: []string{
			"Go to the profile page",
			"Click 'Edit Details'",
			"Change the name and phone number",
			"Click 'Save'",
			"Verify the success message is shown",
			"Check that the changes were saved",
		},
		Priority: "low",
	},
	{
		Title:       "Responsive Design",
		Description: "Verifies the site renders correctly on mobile devices",
		Steps: []string{
			"Switch the browser to a mobile viewport (or use a real device)",
			"Check that the home page loads correctly",
			"Verify the menu collapses into a hamburger icon",
			"Check that page elements are readable on mobile",
			"Test that buttons are large enough to tap",
		},
		Priority: "medium",
	},
	{
		Title:       "Logout",
		Description: "Verifies a user can sign out securely",
		Steps: []string{
			"Continue with a signed-in user",
			"Choose 'Sign Out' from the user menu",
			"Verify the user is redirected to the login page",
			"Check that protected pages are not reachable with the browser back button",
		},
		Priority: "high",
	},
}

// MockScenarioGenerator returns the first count scenarios of the fixed catalog.
type MockScenarioGenerator struct{}

// NewMockScenarioGenerator creates a catalog-backed scenario generator.
func NewMockScenarioGenerator() *MockScenarioGenerator {
	return &MockScenarioGenerator{}
}

// GenerateScenarios returns min(count, len(catalog)) drafts in catalog order.
func (g *MockScenarioGenerator) GenerateScenarios(ctx context.Context, brief secondary.ProjectBrief, count int) ([]secondary.ScenarioDraft, error) {
	if count > len(catalog) {
		count = len(catalog)
	}
	if count < 0 {
		count = 0
	}
	drafts := make([]secondary.ScenarioDraft, count)
	for i := range drafts {
		d := catalog[i]
		d.Steps = append([]string(nil), d.Steps...)
		drafts[i] = d
	}
	return drafts, nil
}

// MockBugReportGenerator fills a fixed bug report template.
type MockBugReportGenerator struct{}

// NewMockBugReportGenerator creates a template-backed bug report generator.
func NewMockBugReportGenerator() *MockBugReportGenerator {
	return &MockBugReportGenerator{}
}

// DraftBugReport builds a draft from the scenario title, steps and failure notes.
// Steps are cut to their first 100 characters.
func (g *MockBugReportGenerator) DraftBugReport(ctx context.Context, brief secondary.FailureBrief) (*secondary.BugReportDraft, error) {
	return &secondary.BugReportDraft{
		Title:    fmt.Sprintf("Bug: %s - Function Not Working", brief.ScenarioTitle),
		Severity: "high",
		Description: fmt.Sprintf("An unexpected error occurred while running the '%s' test scenario. %s",
			brief.ScenarioTitle, brief.Notes),
		StepsToReproduce: fmt.Sprintf("1. Follow the steps of the test scenario\n2. %s...\n3. The error occurs",
			truncateRunes(brief.Steps, 100)),
		ExpectedResult: "The operation completes successfully and a confirmation message is shown to the user.",
		ActualResult:   fmt.Sprintf("The operation failed. %s", brief.Notes),
	}, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	_ secondary.ScenarioGenerator  = (*MockScenarioGenerator)(nil)
	_ secondary.BugReportGenerator = (*MockBugReportGenerator)(nil)
)
