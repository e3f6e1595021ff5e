package pdf

import "fmt"

// Layout constants, in points from the page bottom
const (
	TitleX       = 200.0
	TitleY       = 750.0
	HeaderX      = 50.0
	CourseX      = 70.0
	TopY         = 750.0
	BottomMargin = 50.0

	// TeacherLineHeight separates lines of the single-teacher report
	TeacherLineHeight = 20.0
	// AllCourseLineHeight separates course lines of the all-teachers report
	AllCourseLineHeight = 15.0
	// SectionGap is the extra space after each teacher of the all-teachers report
	SectionGap = 10.0
)

const (
	fontFamily = "Helvetica"
	fontBold   = "B"
	fontPlain  = ""
)

// Report titles
const (
	TeacherReportTitle = "Teacher Allotment Report"
	AllReportTitle     = "All Teachers Allotment Report"
)

// CourseLine is one resolved course of a report
type CourseLine struct {
	Name  string
	Code  string
	Hours int
}

// String formats the line as printed: "{name} ({code}) - {hours} hrs"
func (c CourseLine) String() string {
	return fmt.Sprintf("%s (%s) - %d hrs", c.Name, c.Code, c.Hours)
}

// TeacherSection is one teacher and the courses printed under it
type TeacherSection struct {
	Name    string
	Email   string
	Courses []CourseLine
}

type font struct {
	style string
	size  float64
}

// cursor tracks the vertical position and starts a new page whenever the next
// line would land below the bottom margin. The current font is restored on the
// new page.
type cursor struct {
	c    Canvas
	y    float64
	font font
}

func (k *cursor) setFont(style string, size float64) {
	k.font = font{style: style, size: size}
	k.c.SetFont(fontFamily, style, size)
}

func (k *cursor) line(x float64, text string, advance float64) {
	if k.y < BottomMargin {
		k.c.AddPage()
		k.c.SetFont(fontFamily, k.font.style, k.font.size)
		k.y = TopY
	}
	k.c.DrawString(x, k.y, text)
	k.y -= advance
}

// RenderTeacherReport lays out the report of a single teacher on c, which must
// already have its first page.
func RenderTeacherReport(c Canvas, section TeacherSection) {
	k := &cursor{c: c}
	k.setFont(fontBold, 14)
	c.DrawString(TitleX, TitleY, TeacherReportTitle)

	k.setFont(fontPlain, 12)
	k.y = 700
	k.line(HeaderX, "Teacher Name: "+section.Name, TeacherLineHeight)
	k.line(HeaderX, "Email: "+section.Email, TeacherLineHeight)
	k.line(HeaderX, "Assigned Courses:", TeacherLineHeight)

	for _, course := range section.Courses {
		k.line(CourseX, course.String(), TeacherLineHeight)
	}
}

// RenderAllReport lays out every teacher section on c, which must already have
// its first page.
func RenderAllReport(c Canvas, sections []TeacherSection) {
	k := &cursor{c: c}
	k.setFont(fontBold, 14)
	c.DrawString(TitleX, TitleY, AllReportTitle)

	k.y = 720
	for _, section := range sections {
		k.setFont(fontBold, 12)
		k.line(HeaderX, fmt.Sprintf("%s - %s", section.Name, section.Email), TeacherLineHeight)

		k.setFont(fontPlain, 11)
		for _, course := range section.Courses {
			k.line(CourseX, course.String(), AllCourseLineHeight)
		}
		k.y -= SectionGap
	}
}

// TeacherReport renders the single-teacher report to PDF bytes
func TeacherReport(section TeacherSection) ([]byte, error) {
	doc := NewDocument(TeacherReportTitle)
	RenderTeacherReport(doc, section)
	return doc.Bytes()
}

// AllReport renders the all-teachers report to PDF bytes
func AllReport(sections []TeacherSection) ([]byte, error) {
	doc := NewDocument(AllReportTitle)
	RenderAllReport(doc, sections)
	return doc.Bytes()
}
