package constants

// Columns are the headers of the exported result sheet, in order:
// index, name, gender, age, date, phone, position, location, salary, email, filename.
var Columns = []string{
	"序号",
	"姓名",
	"性别",
	"年龄",
	"时间",
	"电话",
	"岗位",
	"地区",
	"工资",
	"邮箱",
	"文件名",
}

// FailureColumns are the headers of the sheet listing documents that could not be read.
var FailureColumns = []string{"序号", "文件名", "路径", "错误"}

const (
	ResultSheet  = "简历信息"
	FailureSheet = "失败文件"
)
