package validate

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPasswordRules(t *testing.T) {
	var tests = []struct {
		in  string
		out string
	}{
		{"", "Password is required"},
		{"Ab1!", "Password must be at least 6 characters"},
		{"abcdef1!", "Password must contain at least one uppercase letter"},
		{"Abcdefg!", "Password must contain at least one number"},
		{"Abcdefg1", "Password must contain at least one special character"},
		{"Abcdef1!", ""},
		{`Zz9"zzz`, ""},
	}

	Convey("Passwords are checked class by class", t, func() {
		for _, test := range tests {
			Convey("login with "+test.in, func() {
				err := Struct(Login{Email: "artist@artworked.app", Password: test.in})
				if test.out == "" {
					So(err, ShouldBeNil)
					return
				}
				So(err, ShouldHaveSameTypeAs, Errors{})
				So(err.(Errors)["password"], ShouldEqual, test.out)
			})
		}
	})

	Convey("Every broken rule is listed", t, func() {
		So(PasswordProblems("abc"), ShouldResemble, []string{
			"Password must be at least 6 characters",
			"Password must contain at least one uppercase letter",
			"Password must contain at least one number",
			"Password must contain at least one special character",
		})
		So(PasswordProblems("Abcdef1?"), ShouldBeEmpty)
		So(PasswordProblems(""), ShouldResemble, []string{"Password is required"})
	})
}

func TestForms(t *testing.T) {
	Convey("Signup requires matching passwords and a valid email", t, func() {
		err := Struct(Signup{Username: "ana", Email: "nope", Password: "Abcdef1!", ConfirmPassword: "Abcdef1?"})
		So(err, ShouldNotBeNil)
		errs := err.(Errors)
		So(errs["email"], ShouldEqual, "Invalid email")
		So(errs["confirmPassword"], ShouldEqual, "Passwords must match")
		So(errs, ShouldNotContainKey, "password")

		err = Struct(Signup{Username: "ana", Email: "ana@artworked.app", Password: "Abcdef1!", ConfirmPassword: "Abcdef1!"})
		So(err, ShouldBeNil)
	})

	Convey("Post titles are bounded and images allow-listed", t, func() {
		So(Struct(Post{Title: strings.Repeat("a", 50), Image: "image/png"}), ShouldBeNil)

		errs := Struct(Post{Title: strings.Repeat("a", 51), Description: strings.Repeat("d", 501), Image: "image/webp"}).(Errors)
		So(errs["title"], ShouldEqual, "Title must be less than 50 characters")
		So(errs["description"], ShouldEqual, "Description must be less than 500 characters")
		So(errs["image"], ShouldEqual, "Unsupported file format")

		errs = Struct(Post{}).(Errors)
		So(errs["title"], ShouldEqual, "Title is required")
		So(errs["image"], ShouldEqual, "Image is required")
	})

	Convey("Profile edit has its own username message", t, func() {
		errs := Struct(Profile{BannerPic: "image/bmp"}).(Errors)
		So(errs["username"], ShouldEqual, "Enter a username")
		So(errs["bannerPic"], ShouldEqual, "Unsupported file format")
		So(errs, ShouldNotContainKey, "profilePic")
	})

	Convey("Blank comments are rejected", t, func() {
		So(Struct(Comment{Comment: "   "}).(Errors)["comment"], ShouldEqual, "Comment is required")
		So(Struct(Comment{Comment: "lovely"}), ShouldBeNil)
	})

	Convey("Errors read as a sorted list", t, func() {
		So(Errors{"b": "second", "a": "first"}.Error(), ShouldEqual, "invalid form: a: first; b: second")
	})
}
