package constants

import "sort"

// cities is the fixed set of city names recognised as a location. Membership is exact and
// case-sensitive; it is also used to reject a position candidate that is really a city.
var cities = newSet(
	"北京", "上海", "广州", "深圳", "天津", "重庆",
	"成都", "杭州", "南京", "武汉", "西安", "苏州",
	"长沙", "郑州", "东莞", "青岛", "沈阳", "宁波",
	"昆明", "合肥", "佛山", "无锡", "厦门", "福州",
	"济南", "大连", "哈尔滨", "长春", "石家庄", "南宁",
	"南昌", "贵阳", "太原", "兰州", "海口", "三亚",
	"乌鲁木齐", "呼和浩特", "银川", "西宁", "拉萨", "珠海",
	"中山", "温州", "绍兴", "常州", "徐州", "烟台",
)

// titleWords are section headings, labels and job-title words that look like a
// 2-4 character Han run but are never a person's name.
var titleWords = newSet(
	"个人简历", "求职简历", "简历", "个人信息", "基本信息", "求职意向", "姓名", "名字",
	"工作经历", "教育经历", "项目经验", "自我评价", "技能特长", "联系方式",
	"应聘岗位", "期望职位", "个人资料",
	"基本资料", "教育背景", "专业技能", "工作经验", "项目经历", "个人优势",
	"荣誉奖项", "在校经历", "实习经历", "证书", "求职者", "应聘者",
	"工程师", "前端开发", "后端开发", "产品经理", "项目经理", "设计师", "实习生",
	"手机号码", "电话", "邮箱", "年龄", "性别", "籍贯", "民族", "学历",
	"本科", "硕士", "博士", "大专", "汉族",
)

// IsCity reports whether s is a known city name.
func IsCity(s string) bool {
	_, ok := cities[s]
	return ok
}

// IsTitleWord reports whether s is a known heading or title word.
func IsTitleWord(s string) bool {
	_, ok := titleWords[s]
	return ok
}

// CityNames returns a copy of the city set's members.
func CityNames() []string { return members(cities) }

// TitleWordList returns a copy of the title-word set's members.
func TitleWordList() []string { return members(titleWords) }

func members(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func newSet(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
